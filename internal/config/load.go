package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// ErrConfigValidation wraps validation failures, as opposed to TOML syntax or filesystem errors.
var ErrConfigValidation = errors.New("config validation failed")

var (
	userCacheDir = os.UserCacheDir
	osTempDir    = os.TempDir
	expandHome   = homedir.Expand
)

// Load builds the configuration from defaults, the optional TOML file named by
// SETUP_ORGFLOW_CONFIG, and SETUP_ORGFLOW_* overrides, then fills host paths and validates.
func Load(env Env) (*Config, error) {
	if env == nil {
		env = OSEnv
	}
	cfg := Default()

	if path := lookup(env, EnvConfigFile); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(env, &cfg)
	if err := resolvePaths(env, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFile decodes path on top of cfg, rejecting unknown keys.
func loadFile(path string, cfg *Config) error {
	expanded, err := expandHome(path)
	if err != nil {
		return fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf(messages.ConfigReadFileFmt, expanded, err)
	}
	return Parse(data, expanded, cfg)
}

// Parse decodes TOML data onto cfg. Keys absent from data keep their current values.
// source is used in error messages.
func Parse(data []byte, source string, cfg *Config) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return fmt.Errorf("%w: "+messages.ConfigUnknownKeysFmt, ErrConfigValidation, source, strictErr.String())
		}
		return fmt.Errorf(messages.ConfigInvalidFileFmt, source, err)
	}
	return nil
}

func applyEnv(env Env, cfg *Config) {
	if v := lookup(env, EnvToolName); v != "" {
		cfg.ToolName = v
	}
	if v := lookup(env, EnvServiceURL); v != "" {
		cfg.ServiceURL = v
	}
	if v := lookup(env, EnvCacheDir); v != "" {
		cfg.CacheRoot = v
	}
	if v := lookup(env, EnvTempDir); v != "" {
		cfg.TempDir = v
	}
	if v := lookup(env, EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if lookup(env, EnvRunnerDebug) == "1" {
		cfg.LogLevel = "debug"
	}
}

// resolvePaths fills CacheRoot and TempDir from host-provided locations when unset.
func resolvePaths(env Env, cfg *Config) error {
	if cfg.CacheRoot == "" {
		if v := lookup(env, EnvRunnerToolCache); v != "" {
			cfg.CacheRoot = v
		} else {
			base, err := userCacheDir()
			if err != nil {
				return fmt.Errorf(messages.ConfigResolveUserCacheDirFmt, err)
			}
			cfg.CacheRoot = filepath.Join(base, cacheDirName)
		}
	}
	if cfg.TempDir == "" {
		for _, key := range []string{EnvRunnerTemp, EnvTmpDir} {
			if v := lookup(env, key); v != "" {
				cfg.TempDir = v
				break
			}
		}
		if cfg.TempDir == "" {
			cfg.TempDir = osTempDir()
		}
	}

	var err error
	if cfg.CacheRoot, err = expandHome(cfg.CacheRoot); err != nil {
		return fmt.Errorf(messages.ConfigExpandPathFmt, cfg.CacheRoot, err)
	}
	if cfg.TempDir, err = expandHome(cfg.TempDir); err != nil {
		return fmt.Errorf(messages.ConfigExpandPathFmt, cfg.TempDir, err)
	}
	return nil
}

func lookup(env Env, key string) string {
	v, ok := env(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}
