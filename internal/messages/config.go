package messages

// Config messages for configuration loading and validation.
const (
	ConfigExpandPathFmt          = "expand path %s: %w"
	ConfigReadFileFmt            = "read config file %s: %w"
	ConfigUnknownKeysFmt         = "%s: unknown keys: %s"
	ConfigInvalidFileFmt         = "invalid config file %s: %w"
	ConfigResolveUserCacheDirFmt = "resolve user cache dir: %w"

	ConfigFieldRequiredFmt     = "%s is required"
	ConfigToolNameInvalidFmt   = "tool_name %q must be a bare executable name"
	ConfigPositiveRequiredFmt  = "%s must be positive, got %d"
	ConfigServiceURLInvalidFmt = "service_url %q is invalid: %w"
)
