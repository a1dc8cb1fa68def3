// Package diag lays out the directories OrgFlow writes logs and diagnostic
// bundles to, and points the CLI at them through environment variables.
package diag

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// Variables read by the OrgFlow CLI.
const (
	EnvBundleMode      = "ORGFLOW_DIAGNOSTICBUNDLEMODE"
	EnvBundleDir       = "ORGFLOW_DIAGNOSTICSFILEDIRECTORYPATH"
	EnvLogFilePath     = "ORGFLOW_LOGFILEPATH"
	EnvLogLevel        = "ORGFLOW_LOGLEVEL"
	EnvWarningTemplate = "ORGFLOW_OUTPUTTEMPLATE_WARNING"
	EnvErrorTemplate   = "ORGFLOW_OUTPUTTEMPLATE_ERROR"
	BundleModeAlways   = "always"
	WarningTemplate    = "::warning title=OrgFlow Warning::$$msg$$"
	ErrorTemplate      = "::error title=OrgFlow Error::$$msg$$"
	rootDirName        = "OrgFlow"
	logDirName         = "logs"
	bundleDirName      = "bundles"
)

// Exporter sets an environment variable for this step and later ones.
type Exporter interface {
	ExportVariable(name, value string) error
}

// Layout is the diagnostics directory tree under the runner temp directory.
type Layout struct {
	Root      string
	LogDir    string
	BundleDir string
}

// NewLayout returns the layout rooted at <tempDir>/OrgFlow.
func NewLayout(tempDir string) Layout {
	root := filepath.Join(tempDir, rootDirName)
	return Layout{
		Root:      root,
		LogDir:    filepath.Join(root, logDirName),
		BundleDir: filepath.Join(root, bundleDirName),
	}
}

// LogFilePath returns the path of logFileName inside the log directory.
func (l Layout) LogFilePath(logFileName string) string {
	return filepath.Join(l.LogDir, logFileName)
}

// Configure creates the directories and exports the CLI diagnostics settings.
// OrgFlow warnings and errors are rendered as workflow annotations.
func (l Layout) Configure(exp Exporter, logFileName, logLevel string) error {
	for _, dir := range []string{l.LogDir, l.BundleDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf(messages.DiagCreateDirFmt, dir, err)
		}
	}
	vars := []struct{ name, value string }{
		{EnvBundleMode, BundleModeAlways},
		{EnvBundleDir, l.BundleDir},
		{EnvLogFilePath, l.LogFilePath(logFileName)},
		{EnvLogLevel, logLevel},
		{EnvWarningTemplate, WarningTemplate},
		{EnvErrorTemplate, ErrorTemplate},
	}
	for _, v := range vars {
		if err := exp.ExportVariable(v.name, v.value); err != nil {
			return err
		}
	}
	return nil
}

// Collect returns the bundle files followed by the log files. Missing directories contribute nothing.
func (l Layout) Collect() ([]string, error) {
	var files []string
	for _, dir := range []string{l.BundleDir, l.LogDir} {
		found, err := listFiles(dir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.DiagListDirFmt, dir, err)
	}
	var files []string
	for _, entry := range entries {
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
