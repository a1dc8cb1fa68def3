// Package toolcache is a host-local, version-keyed store of extracted tool directories.
//
// Layout: <root>/<tool>/<version>/ holds one published entry. Entries become visible
// only through a single rename from a staging directory, so Find never observes a
// partially written entry, and publication is serialized per key by an advisory lock.
package toolcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/setup-orgflow/internal/errs"
	"github.com/conn-castle/setup-orgflow/internal/messages"
)

const (
	stagingPrefix = ".staging-"
	lockSuffix    = ".lock"
)

var (
	osRename   = os.Rename
	osMkdirAll = os.MkdirAll
	copyTreeFn = copyTree
)

// Cache stores extracted tool directories under a root directory.
type Cache struct {
	root   string
	logger *log.Logger
}

// New returns a Cache rooted at root. The directory is created on first Store.
func New(root string, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Default()
	}
	return &Cache{root: root, logger: logger}
}

// Root returns the cache root directory.
func (c *Cache) Root() string {
	return c.root
}

// ListVersions returns the published versions of tool in semantic version order.
func (c *Cache) ListVersions(tool string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(c.root, tool))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.CacheListFmt, tool, err)
	}
	var versions []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, stagingPrefix) {
			continue
		}
		versions = append(versions, name)
	}
	sortVersions(versions)
	return versions, nil
}

// Find returns the directory of the published entry for (tool, version).
// A missing entry is reported as ok=false with a nil error.
func (c *Cache) Find(tool string, version string) (string, bool, error) {
	dir, err := c.entryDir(tool, version)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, &errs.CacheCorruptionError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return "", false, &errs.CacheCorruptionError{Path: dir, Err: errors.New(messages.CacheEntryNotDir)}
	}
	return dir, true, nil
}

// Store publishes the fully extracted stagingDir as the entry for (tool, version) and
// returns the entry directory. stagingDir is copied, not moved; the caller owns it.
// When another writer already published the key, its entry is returned unchanged.
func (c *Cache) Store(stagingDir string, tool string, version string) (string, error) {
	if err := validateStaging(stagingDir); err != nil {
		return "", err
	}
	dest, err := c.entryDir(tool, version)
	if err != nil {
		return "", err
	}
	toolDir := filepath.Dir(dest)
	if err := osMkdirAll(toolDir, 0o755); err != nil {
		return "", &errs.CacheCorruptionError{Path: toolDir, Err: err}
	}

	var published string
	err = withFileLock(dest+lockSuffix, func() error {
		existing, ok, err := c.Find(tool, version)
		if err != nil {
			return err
		}
		if ok {
			c.logger.Debug(messages.CacheAlreadyPublished, "tool", tool, "version", version, "path", existing)
			published = existing
			return nil
		}

		tmp, err := os.MkdirTemp(toolDir, stagingPrefix+version+"-")
		if err != nil {
			return &errs.CacheCorruptionError{Path: toolDir, Err: err}
		}
		committed := false
		defer func() {
			if !committed {
				_ = os.RemoveAll(tmp)
			}
		}()

		if err := copyTreeFn(stagingDir, tmp); err != nil {
			return &errs.CacheCorruptionError{Path: tmp, Err: err}
		}
		if err := osRename(tmp, dest); err != nil {
			return &errs.CacheCorruptionError{Path: dest, Err: fmt.Errorf(messages.CachePublishFmt, err)}
		}
		committed = true
		published = dest
		return nil
	})
	if err != nil {
		return "", err
	}
	c.logger.Debug(messages.CacheStored, "tool", tool, "version", version, "path", published)
	return published, nil
}

// entryDir returns the key directory, rejecting key parts that would escape the tool directory.
func (c *Cache) entryDir(tool string, version string) (string, error) {
	for _, part := range []string{tool, version} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) || strings.HasPrefix(part, stagingPrefix) {
			return "", &errs.CacheCorruptionError{
				Path: filepath.Join(c.root, tool, version),
				Err:  fmt.Errorf(messages.CacheInvalidKeyFmt, tool, version),
			}
		}
	}
	return filepath.Join(c.root, tool, version), nil
}

func validateStaging(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return &errs.CacheCorruptionError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &errs.CacheCorruptionError{Path: dir, Err: errors.New(messages.CacheStagingNotDir)}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &errs.CacheCorruptionError{Path: dir, Err: err}
	}
	if len(entries) == 0 {
		return &errs.CacheCorruptionError{Path: dir, Err: errors.New(messages.CacheStagingEmpty)}
	}
	return nil
}
