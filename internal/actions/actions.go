// Package actions speaks the GitHub Actions runner protocol: inputs from the
// environment, workflow commands on stdout, and the GITHUB_* command files.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/conn-castle/setup-orgflow/internal/config"
	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// Runner environment variables.
const (
	EnvGitHubOutput  = "GITHUB_OUTPUT"
	EnvGitHubPath    = "GITHUB_PATH"
	EnvGitHubEnv     = "GITHUB_ENV"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvPath          = "PATH"
	inputPrefix      = "INPUT_"
)

var newDelimiter = func() string {
	return "ghadelimiter_" + uuid.NewString()
}

// Options configures a Runtime. Unset fields fall back to the process.
type Options struct {
	Env    config.Env
	Setenv func(key, value string) error
	Stdout io.Writer
}

// Runtime issues workflow commands for a single step.
type Runtime struct {
	env    config.Env
	setenv func(key, value string) error
	out    io.Writer
}

// New returns a Runtime for opts.
func New(opts Options) *Runtime {
	r := &Runtime{env: opts.Env, setenv: opts.Setenv, out: opts.Stdout}
	if r.env == nil {
		r.env = config.OSEnv
	}
	if r.setenv == nil {
		r.setenv = os.Setenv
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	return r
}

// Input returns the trimmed value of the named action input, or "" when unset.
func (r *Runtime) Input(name string) string {
	key := inputPrefix + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	value, _ := r.env(key)
	return strings.TrimSpace(value)
}

// BoolInput parses the named input as a YAML 1.2 core boolean.
// An empty input returns def.
func (r *Runtime) BoolInput(name string, def bool) (bool, error) {
	switch r.Input(name) {
	case "":
		return def, nil
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	default:
		return false, fmt.Errorf(messages.ActionsInvalidBoolInputFmt, name)
	}
}

// SetOutput sets a step output through GITHUB_OUTPUT, or the legacy command when unset.
func (r *Runtime) SetOutput(name, value string) error {
	if path, ok := r.lookup(EnvGitHubOutput); ok {
		return appendKeyValue(path, name, value)
	}
	r.issue("set-output", map[string]string{"name": name}, value)
	return nil
}

// ExportVariable sets name for this step and persists it for later steps.
func (r *Runtime) ExportVariable(name, value string) error {
	if err := r.setenv(name, value); err != nil {
		return err
	}
	if path, ok := r.lookup(EnvGitHubEnv); ok {
		return appendKeyValue(path, name, value)
	}
	r.issue("set-env", map[string]string{"name": name}, value)
	return nil
}

// AddPath prepends dir to PATH for this step and persists it for later steps.
func (r *Runtime) AddPath(dir string) error {
	current, _ := r.env(EnvPath)
	updated := dir
	if current != "" {
		updated = dir + string(os.PathListSeparator) + current
	}
	if err := r.setenv(EnvPath, updated); err != nil {
		return err
	}
	if path, ok := r.lookup(EnvGitHubPath); ok {
		return appendLine(path, dir)
	}
	r.issue("add-path", nil, dir)
	return nil
}

// SetSecret masks value in all later log output.
func (r *Runtime) SetSecret(value string) {
	if value == "" {
		return
	}
	r.issue("add-mask", nil, value)
}

// Group starts a collapsible log group.
func (r *Runtime) Group(name string) {
	r.issue("group", nil, name)
}

// EndGroup ends the current log group.
func (r *Runtime) EndGroup() {
	r.issue("endgroup", nil, "")
}

// Debug writes a debug message. The runner shows it only when step debugging is enabled.
func (r *Runtime) Debug(message string) {
	r.issue("debug", nil, message)
}

// Warning writes a warning annotation.
func (r *Runtime) Warning(message string) {
	r.issue("warning", nil, message)
}

// Error writes an error annotation.
func (r *Runtime) Error(message string) {
	r.issue("error", nil, message)
}

// IsDebug reports whether the runner enabled step debugging.
func (r *Runtime) IsDebug() bool {
	value, _ := r.env(config.EnvRunnerDebug)
	return value == "1"
}

func (r *Runtime) lookup(key string) (string, bool) {
	value, ok := r.env(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

func (r *Runtime) issue(command string, properties map[string]string, message string) {
	_, _ = io.WriteString(r.out, formatCommand(command, properties, message)+"\n")
}
