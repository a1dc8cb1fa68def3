package messages

// Error taxonomy messages. Each error kind renders one of these.
const (
	ErrUnsupportedOSFmt           = "Unsupported operating system: %s"
	ErrUnsupportedArchFmt         = "Unsupported CPU architecture: %s"
	ErrVersionNotFoundFmt         = "No version of OrgFlow matches version filter %q (include prerelease: %t)"
	ErrTransportFmt               = "request to %s failed: %v"
	ErrTransportStatusFmt         = "request to %s failed with status %s"
	ErrCacheCorruptionFmt         = "tool cache entry %s is unusable: %v"
	ErrPostInstallVerificationFmt = "Installed version '%s' does not match expected version '%s'."
)
