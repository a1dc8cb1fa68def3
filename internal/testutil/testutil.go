// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

// SkipOnWindows skips tests that rely on POSIX shell stubs.
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not supported on windows")
	}
}

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	writeScript(t, filepath.Join(dir, name), fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode))
}

// WriteVersionStub writes an executable stub that prints version for --version and exits 0.
// Any other invocation exits 2.
func WriteVersionStub(t *testing.T, dir string, name string, version string) {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\nif [ \"$1\" = \"--version\" ]; then\n  echo %q\n  exit 0\nfi\nexit 2\n", version)
	writeScript(t, filepath.Join(dir, name), script)
}

// WriteRecordingStub writes an executable stub that appends its arguments, one invocation
// per line, to logPath, prints stdout, and exits with exitCode.
func WriteRecordingStub(t *testing.T, dir string, name string, logPath string, stdout string, exitCode int) {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\necho \"$*\" >> %q\nprintf '%%s' %q\necho 'stub stderr' >&2\nexit %d\n", logPath, stdout, exitCode)
	writeScript(t, filepath.Join(dir, name), script)
}

func writeScript(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// WriteZip writes a zip archive at path containing files (name -> content).
// Names ending in "/" become directory entries; entries whose name is listed in
// executables get mode 0755.
func WriteZip(t *testing.T, path string, files map[string]string, executables ...string) {
	t.Helper()
	exec := map[string]bool{}
	for _, name := range executables {
		exec[name] = true
	}

	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(out)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		header := &zip.FileHeader{Name: name, Method: zip.Deflate}
		mode := os.FileMode(0o644)
		if exec[name] {
			mode = 0o755
		}
		if name[len(name)-1] == '/' {
			mode = os.ModeDir | 0o755
		}
		header.SetMode(mode)
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatalf("zip header %s: %v", name, err)
		}
		if mode.IsDir() {
			continue
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
}

// ReadLines returns the non-empty lines of path, or nil if it does not exist.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, string(data[start:i]))
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}
