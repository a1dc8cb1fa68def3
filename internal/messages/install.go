package messages

// UserAgent is sent with every request to the download service.
const UserAgent = "setup-orgflow"

// Resolver messages.
const (
	ResolverBuildURLFmt         = "build lookup URL: %w"
	ResolverUsingFilter         = "Using version filter"
	ResolverIncludingPrerelease = "Including prerelease versions"
	ResolverChecking            = "Checking latest available version"
	ResolverDecodeFmt           = "decode version descriptor: %w"
	ResolverMissingFieldFmt     = "version descriptor is missing %q"
	ResolverLatestAvailable     = "Latest available version"
)

// Probe messages.
const (
	ProbeRunning     = "Checking installed version"
	ProbeNotFound    = "Executable could not be found on PATH"
	ProbeFailed      = "Version check failed; treating tool as not installed"
	ProbeEmptyOutput = "Version check printed nothing; treating tool as not installed"
	ProbeReturned    = "Installed version"
)

// Tool cache messages.
const (
	CacheListFmt                = "list cached versions of %s: %w"
	CacheEntryNotDir            = "cache entry exists but is not a directory"
	CacheAlreadyPublished       = "Cache entry already published"
	CachePublishFmt             = "publish cache entry: %w"
	CacheStored                 = "Stored cache entry"
	CacheInvalidKeyFmt          = "invalid cache key %q/%q"
	CacheStagingNotDir          = "staging path is not a directory"
	CacheStagingEmpty           = "staging directory is empty"
	CacheUnsupportedFileTypeFmt = "unsupported file type %s at %s"
	CacheOpenLockFmt            = "open lock: %w"
	CacheLockFmt                = "acquire lock: %w"
	CacheLockTimeoutFmt         = "timed out after %s waiting for cache lock"
)

// Download and extraction messages.
const (
	DownloadCreateTempFileFmt = "create download file in %s: %w"
	DownloadCloseTempFileFmt  = "close download file %s: %w"
	DownloadTooLargeFmt       = "download exceeded %d bytes"
	DownloadTimeoutFmt        = "download timed out: %w"
	Downloading               = "Downloading"
	Downloaded                = "Downloaded"
	ExtractCreateDirFmt       = "create extraction directory in %s: %w"
	ExtractUnsupportedFmt     = "unsupported archive format %q"
	ExtractOpenFmt            = "open archive: %w"
	ExtractEntryEscapesFmt    = "archive entry %q escapes the extraction directory"
	ExtractEntryFmt           = "extract %s: %w"
	ExtractReadHeaderFmt      = "read tar header: %w"
	Extracting                = "Extracting"
	Extracted                 = "Extracted"
)

// Installer phase messages.
const (
	InstallPriorVersion   = "Currently installed version"
	InstallNotInstalled   = "OrgFlow is not currently installed"
	InstallSkipping       = "Skipping install"
	InstallResolving      = "Resolving target version"
	InstallAlreadyCurrent = "Latest available version is already installed"
	InstallCachedVersions = "Versions in tool cache"
	InstallCacheHit       = "Found version in tool cache"
	InstallCacheMiss      = "Version not found in tool cache"
	InstallActivated      = "Added install directory to PATH"
	InstallVerified       = "Installed version verified"
	InstallCleanupFailed  = "Could not remove temporary download artifacts"
	InstallDepRequiredFmt = "installer dependency %s is required"
	InstallVersionUnknown = "<none>"
)
