package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/conn-castle/setup-orgflow/internal/actions"
	"github.com/conn-castle/setup-orgflow/internal/config"
	"github.com/conn-castle/setup-orgflow/internal/messages"
)

var executeFunc = execute

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// execute runs the CLI command with the provided args and output writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd(config.OSEnv)
	cmd.Version = versionString()
	cmd.SetVersionTemplate(messages.VersionTemplate)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// runMain executes the CLI, exiting non-zero on any error.
// Inside a workflow the error is also raised as an annotation so the step fails visibly.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	err := executeFunc(args, stdout, stderr)
	if err == nil {
		return
	}
	reportError(config.OSEnv, err, stdout, stderr)
	exit(1)
}

func reportError(env config.Env, err error, stdout io.Writer, stderr io.Writer) {
	if inWorkflow(env) {
		actions.New(actions.Options{Env: env, Stdout: stdout}).Error(err.Error())
		return
	}
	_, _ = fmt.Fprintln(stderr, color.RedString(err.Error()))
}

func inWorkflow(env config.Env) bool {
	value, _ := env(actions.EnvGitHubActions)
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

// versionString formats Version with optional commit and build date metadata.
func versionString() string {
	meta := []string{}
	if Commit != "" && Commit != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionCommitFmt, Commit))
	}
	if BuildDate != "" && BuildDate != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionBuildFmt, BuildDate))
	}
	if len(meta) == 0 {
		return Version
	}
	return fmt.Sprintf(messages.VersionFullFmt, Version, strings.Join(meta, ", "))
}
