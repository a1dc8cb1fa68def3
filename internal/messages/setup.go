package messages

// Setup flow messages.
const (
	SetupInputRequiredFmt           = "Input value '%s' is required."
	SetupSalesforcePair             = "Either both or neither of inputs 'salesforce-username' and 'salesforce-password' must have a value."
	SetupGitUsernameWithoutPassword = "Input value 'git-username' must only be used when also using 'git-password'."
	SetupStackRequiredForSalesforce = "Input value 'stack-name' is required when saving Salesforce credentials."
	SetupStackRequiredForGit        = "Input value 'stack-name' is required when saving Git credentials."
	SetupEncryptionKeyInvalid       = "Input value 'encryption-key' must consist of 64 hexadecimal characters if specified."
	SetupDepRequiredFmt             = "setup dependency %s is required"

	SetupDiagnosticsLogFile = "setup.log"

	GroupInstall               = "Install"
	GroupSetLicenseKey         = "Set license key"
	GroupSaveEncryptionKey     = "Save encryption key"
	GroupSaveSalesforce        = "Save Salesforce credentials"
	GroupConfigureGitAuth      = "Configure Git authentication"
	GroupConfigureGitCommitter = "Configure Git committer"
	GroupSetDefaultStack       = "Set default stack"

	OutputVersion         = "version"
	OutputEncryptionKey   = "encryption-key"
	OutputDiagnosticsPath = "diagnostics-path"

	SetupInstalled       = "OrgFlow is ready"
	SetupNotInstalled    = "OrgFlow is not installed and installation was skipped"
	PostUploadDisabled   = "Diagnostics upload is disabled"
	PostDiagnosticsFound = "Diagnostic files are ready for upload"
)
