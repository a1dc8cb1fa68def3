package setup

import (
	"github.com/charmbracelet/log"

	"github.com/conn-castle/setup-orgflow/internal/diag"
	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// PostRuntime is the workflow surface the post-job step writes to.
type PostRuntime interface {
	SetOutput(name, value string) error
}

// Post reports the diagnostic files left by OrgFlow and exposes their root
// directory as the diagnostics-path output. It returns the files found.
func Post(rt PostRuntime, layout diag.Layout, upload bool, logger *log.Logger) ([]string, error) {
	if logger == nil {
		logger = log.Default()
	}
	if !upload {
		logger.Info(messages.PostUploadDisabled)
		return nil, nil
	}
	files, err := layout.Collect()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Info(messages.DiagNoFiles)
		return nil, nil
	}
	for _, f := range files {
		logger.Debug(f)
	}
	logger.Info(messages.PostDiagnosticsFound, "count", len(files), "root", layout.Root)
	if err := rt.SetOutput(messages.OutputDiagnosticsPath, layout.Root); err != nil {
		return nil, err
	}
	return files, nil
}
