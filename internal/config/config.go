// Package config resolves the installer configuration once per process.
// Components receive a *Config and never read the process environment themselves.
package config

import (
	"os"
	"time"
)

// Environment keys consulted by Load.
const (
	EnvConfigFile = "SETUP_ORGFLOW_CONFIG"
	EnvServiceURL = "SETUP_ORGFLOW_SERVICE_URL"
	EnvCacheDir   = "SETUP_ORGFLOW_CACHE_DIR"
	EnvTempDir    = "SETUP_ORGFLOW_TEMP_DIR"
	EnvLogLevel   = "SETUP_ORGFLOW_LOG_LEVEL"
	EnvToolName   = "SETUP_ORGFLOW_TOOL"

	EnvRunnerToolCache = "RUNNER_TOOL_CACHE"
	EnvRunnerTemp      = "RUNNER_TEMP"
	EnvRunnerDebug     = "RUNNER_DEBUG"
	EnvTmpDir          = "TMPDIR"
)

// Defaults for the OrgFlow download service.
const (
	DefaultToolName           = "orgflow"
	DefaultProductID          = "cli"
	DefaultServiceURL         = "https://orgflow-dv2-apim.azure-api.net/download/v2"
	DefaultHTTPTimeoutSeconds = 300
	DefaultMaxDownloadMB      = 512
	DefaultLogLevel           = "info"
	cacheDirName              = "setup-orgflow"
)

// Config holds every ambient setting the installer needs.
type Config struct {
	// ToolName is the executable name and the tool cache key.
	ToolName string `toml:"tool_name"`
	// ProductID is the download service product identifier.
	ProductID string `toml:"product_id"`
	// ServiceURL is the download service base URL, without the product segment.
	ServiceURL string `toml:"service_url"`
	// CacheRoot is the root of the version-keyed tool cache.
	CacheRoot string `toml:"cache_root"`
	// TempDir receives downloaded archives and extraction staging directories.
	TempDir            string `toml:"temp_dir"`
	HTTPTimeoutSeconds int    `toml:"http_timeout_seconds"`
	MaxDownloadMB      int64  `toml:"max_download_mb"`
	LogLevel           string `toml:"log_level"`
}

// Default returns the built-in configuration with host-dependent paths left empty.
func Default() Config {
	return Config{
		ToolName:           DefaultToolName,
		ProductID:          DefaultProductID,
		ServiceURL:         DefaultServiceURL,
		HTTPTimeoutSeconds: DefaultHTTPTimeoutSeconds,
		MaxDownloadMB:      DefaultMaxDownloadMB,
		LogLevel:           DefaultLogLevel,
	}
}

// HTTPTimeout returns the per-request HTTP timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// MaxDownloadBytes returns the archive size limit in bytes.
func (c *Config) MaxDownloadBytes() int64 {
	return c.MaxDownloadMB * 1024 * 1024
}

// Env looks up an environment variable.
type Env func(key string) (string, bool)

// OSEnv reads the process environment.
func OSEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv returns an Env backed by a fixed map.
func MapEnv(values map[string]string) Env {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}
