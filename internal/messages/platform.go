package messages

// Platform and logging messages.
const (
	RuntimeIDInvalidFmt    = "invalid runtime identifier %q: expected <os>-<arch>"
	LoggingInvalidLevelFmt = "invalid log level %q: expected debug, info, warn or error"
)
