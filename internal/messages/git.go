package messages

// Git configuration messages.
const (
	GitSettingCommitterName      = "Setting Git committer name globally"
	GitSettingCommitterEmail     = "Setting Git committer email globally"
	GitConfiguringAuthentication = "Configuring Git authentication"
	GitAuthenticationConfigured  = "Git authentication was configured"
)
