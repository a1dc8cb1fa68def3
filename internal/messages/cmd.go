package messages

// Command line text.
const (
	RootUse   = "setup-orgflow"
	RootShort = "Install and configure the OrgFlow CLI on a CI runner"

	RunUse   = "run"
	RunShort = "Run the full setup step using INPUT_* action inputs"

	InstallUse                 = "install"
	InstallShort               = "Install the newest OrgFlow CLI matching a version filter"
	InstallVersionStatusFmt    = "OrgFlow %s is installed"
	InstallNotInstalledStatus  = "OrgFlow is not installed"
	FlagVersion                = "version"
	FlagVersionUsage           = "version filter forwarded to the download service"
	FlagIncludePrerelease      = "include-prerelease"
	FlagIncludePrereleaseUsage = "consider prerelease versions"
	FlagSkipInstall            = "skip-install"
	FlagSkipInstallUsage       = "only report the installed version"
	FlagRuntimeID              = "runtime-id"
	FlagRuntimeIDUsage         = "runtime identifier to install for instead of the host (e.g. linux-x64)"

	PostUse   = "post"
	PostShort = "Report diagnostic files after the job"

	CacheUse       = "cache"
	CacheShort     = "Inspect the tool cache"
	CacheListUse   = "list"
	CacheListShort = "List cached versions"
	CacheEmptyFmt  = "No cached versions of %s under %s"

	RuntimeIDUse   = "runtime-id"
	RuntimeIDShort = "Print the runtime identifier of this host"

	VersionTemplate  = "{{.Version}}\n"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
)
