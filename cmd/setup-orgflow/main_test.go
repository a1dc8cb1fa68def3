package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMainVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute([]string{"setup-orgflow", "--version"}, &out, &out))
	require.Contains(t, out.String(), Version)
}

func TestMainUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, execute([]string{"setup-orgflow", "unknown"}, &out, &out))
}

func TestRunMainSuccess(t *testing.T) {
	var out bytes.Buffer
	called := false
	runMain([]string{"setup-orgflow", "--version"}, &out, &out, func(int) { called = true })
	require.False(t, called)
}

func TestRunMainError(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "")
	var stdout, stderr bytes.Buffer
	code := 0
	runMain([]string{"setup-orgflow", "unknown"}, &stdout, &stderr, func(c int) { code = c })
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "unknown command")
	require.Empty(t, stdout.String())
}

func TestRunMainErrorInWorkflow(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")
	var stdout, stderr bytes.Buffer
	code := 0
	runMain([]string{"setup-orgflow", "unknown"}, &stdout, &stderr, func(c int) { code = c })
	require.Equal(t, 1, code)
	require.True(t, strings.HasPrefix(stdout.String(), "::error::unknown command"))
}

func TestMainCallsExecute(t *testing.T) {
	originalArgs := os.Args
	t.Cleanup(func() { os.Args = originalArgs })
	os.Args = []string{"setup-orgflow", "--version"}

	orig := executeFunc
	called := false
	executeFunc = func(args []string, _ io.Writer, _ io.Writer) error {
		called = true
		require.Equal(t, os.Args, args)
		return nil
	}
	t.Cleanup(func() { executeFunc = orig })

	main()
	require.True(t, called)
}

func TestVersionString(t *testing.T) {
	origV, origC, origB := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origV, origC, origB })

	Version, Commit, BuildDate = "1.2.3", "unknown", "unknown"
	require.Equal(t, "1.2.3", versionString())

	Commit, BuildDate = "abc123", "2026-01-02"
	require.Equal(t, "1.2.3 (commit abc123, built 2026-01-02)", versionString())
}
