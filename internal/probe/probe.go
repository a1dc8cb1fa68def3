// Package probe detects whether the tool is installed and which version it reports.
package probe

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// VersionFlag is passed to the tool to query its version.
const VersionFlag = "--version"

// Prober reports the version of the tool resolved from the execution path.
type Prober struct {
	tool   string
	sys    System
	logger *log.Logger
}

// New returns a Prober for the executable named tool.
func New(tool string, sys System, logger *log.Logger) *Prober {
	if sys == nil {
		sys = RealSystem{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Prober{tool: tool, sys: sys, logger: logger}
}

// Probe returns the trimmed output of `<tool> --version` and true, or "" and false
// when the tool is missing or cannot report a version. Failures never propagate:
// a broken prior installation must not block reinstalling.
func (p *Prober) Probe(ctx context.Context) (string, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	p.logger.Debug(messages.ProbeRunning, "tool", p.tool)

	path, err := p.sys.LookPath(p.tool)
	if err != nil {
		p.logger.Debug(messages.ProbeNotFound, "tool", p.tool)
		return "", false
	}

	out, err := p.sys.Output(ctx, path, VersionFlag)
	if err != nil {
		p.logger.Warn(messages.ProbeFailed, "tool", p.tool, "path", path, "err", describe(err))
		return "", false
	}
	version := strings.TrimSpace(string(out))
	if version == "" {
		p.logger.Warn(messages.ProbeEmptyOutput, "tool", p.tool, "path", path)
		return "", false
	}
	p.logger.Debug(messages.ProbeReturned, "tool", p.tool, "version", version)
	return version, true
}

// describe includes the tool's stderr when the process exited non-zero.
func describe(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if stderr != "" {
			return err.Error() + ": " + stderr
		}
	}
	return err.Error()
}
