package probe

import (
	"context"
	"os/exec"
)

// System abstracts the process operations needed to probe an installed tool.
type System interface {
	// LookPath resolves name on the current execution path.
	LookPath(name string) (string, error)
	// Output runs path with args and returns its standard output.
	// A non-zero exit is reported as an error.
	Output(ctx context.Context, path string, args ...string) ([]byte, error)
}

// RealSystem implements System with os/exec.
type RealSystem struct{}

// LookPath searches PATH for an executable named name.
func (RealSystem) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Output runs the command and returns its standard output.
func (RealSystem) Output(ctx context.Context, path string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, path, args...).Output()
}
