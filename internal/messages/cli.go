package messages

// CLI pass-through messages.
const (
	CLIStartFmt                    = "'%s %s' could not be started: %w"
	CLIExitFmt                     = "'%s %s' failed with exit code %d. STDERR: %s"
	CLIValidatingLicenseKey        = "Validating license key"
	CLILicenseKeySaved             = "License key was validated and saved"
	CLICreatingEncryptionKey       = "Creating new encryption key"
	CLIEncryptionKeyCreated        = "New encryption key was created"
	CLISavingEncryptionKey         = "Saving encryption key locally"
	CLISavingSalesforceCredentials = "Saving Salesforce credentials locally"
	CLISavingGitCredentials        = "Saving Git credentials locally"
	CLISettingDefaultStack         = "Setting default stack"
)
