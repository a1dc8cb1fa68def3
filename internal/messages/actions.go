package messages

// GitHub Actions runtime messages.
const (
	ActionsInvalidBoolInputFmt = "Input value '%s' must be one of: true | True | TRUE | false | False | FALSE"
	ActionsDelimiterInNameFmt  = "unexpected delimiter in command file name %q"
	ActionsDelimiterInValueFmt = "unexpected delimiter in command file value for %q"
	ActionsCommandFileFmt      = "write command file %s: %w"
)
