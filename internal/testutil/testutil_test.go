package testutil

import (
	"archive/zip"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteStubCreatesExecutableThatSucceeds(t *testing.T) {
	SkipOnWindows(t)
	dir := t.TempDir()
	stubPath := filepath.Join(dir, "ok-stub")
	WriteStub(t, dir, "ok-stub")

	info, err := os.Stat(stubPath)
	if err != nil {
		t.Fatalf("stat stub: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected mode 0755, got %#o", info.Mode().Perm())
	}

	cmd := exec.Command(stubPath)
	if err := cmd.Run(); err != nil {
		t.Fatalf("expected success exit, got %v", err)
	}
}

func TestWriteStubWithExitCreatesExecutableWithRequestedExitCode(t *testing.T) {
	SkipOnWindows(t)
	dir := t.TempDir()
	stubPath := filepath.Join(dir, "exit-stub")
	WriteStubWithExit(t, dir, "exit-stub", 7)

	err := exec.Command(stubPath).Run()
	if err == nil {
		t.Fatal("expected non-zero exit status")
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T", err)
	}
	if exitErr.ExitCode() != 7 {
		t.Fatalf("expected exit code 7, got %d", exitErr.ExitCode())
	}
}

func TestWriteVersionStubPrintsVersion(t *testing.T) {
	SkipOnWindows(t)
	dir := t.TempDir()
	WriteVersionStub(t, dir, "orgflow", "3.2.0")

	out, err := exec.Command(filepath.Join(dir, "orgflow"), "--version").Output()
	if err != nil {
		t.Fatalf("run stub: %v", err)
	}
	if strings.TrimSpace(string(out)) != "3.2.0" {
		t.Fatalf("expected 3.2.0, got %q", out)
	}
	if err := exec.Command(filepath.Join(dir, "orgflow"), "stack:list").Run(); err == nil {
		t.Fatal("expected non-version invocation to fail")
	}
}

func TestWriteRecordingStubRecordsArgs(t *testing.T) {
	SkipOnWindows(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	WriteRecordingStub(t, dir, "tool", logPath, "out", 0)

	out, err := exec.Command(filepath.Join(dir, "tool"), "a", "b").Output()
	if err != nil {
		t.Fatalf("run stub: %v", err)
	}
	if string(out) != "out" {
		t.Fatalf("expected stdout %q, got %q", "out", out)
	}
	if _, err := exec.Command(filepath.Join(dir, "tool"), "c").Output(); err != nil {
		t.Fatalf("run stub: %v", err)
	}
	lines := ReadLines(t, logPath)
	if len(lines) != 2 || lines[0] != "a b" || lines[1] != "c" {
		t.Fatalf("unexpected recorded calls: %q", lines)
	}
}

func TestWriteZipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.zip")
	WriteZip(t, path, map[string]string{"bin/": "", "bin/orgflow": "#!/bin/sh\n", "README": "hi"}, "bin/orgflow")

	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer reader.Close()

	found := map[string]os.FileMode{}
	for _, f := range reader.File {
		found[f.Name] = f.Mode()
		if f.Name == "README" {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("open entry: %v", err)
			}
			data, _ := io.ReadAll(rc)
			_ = rc.Close()
			if string(data) != "hi" {
				t.Fatalf("unexpected README content %q", data)
			}
		}
	}
	if !found["bin/"].IsDir() {
		t.Fatalf("expected directory entry, got %v", found["bin/"])
	}
	if found["bin/orgflow"].Perm() != 0o755 {
		t.Fatalf("expected executable entry, got %v", found["bin/orgflow"])
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	if got := ReadLines(t, filepath.Join(t.TempDir(), "none")); got != nil {
		t.Fatalf("expected nil, got %q", got)
	}
}
