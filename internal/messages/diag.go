package messages

// Diagnostics messages.
const (
	DiagCreateDirFmt = "create diagnostics directory %s: %w"
	DiagListDirFmt   = "list diagnostics directory %s: %w"
	DiagNoFiles      = "No diagnostic files to upload"
)
