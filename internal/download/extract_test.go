package download

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/setup-orgflow/internal/errs"
	"github.com/conn-castle/setup-orgflow/internal/logging"
	"github.com/conn-castle/setup-orgflow/internal/testutil"
)

func newTestExtractor(t *testing.T) (*Extractor, string) {
	t.Helper()
	dir := t.TempDir()
	return NewExtractor(dir, logging.Discard()), dir
}

func writeTarGz(t *testing.T, path string, entries []tar.Header, contents map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, h := range entries {
		h := h
		body := contents[h.Name]
		h.Size = int64(len(body))
		require.NoError(t, tw.WriteHeader(&h))
		if body != "" {
			_, err := tw.Write([]byte(body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestExtractZip(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "orgflow.zip")
	testutil.WriteZip(t, archive, map[string]string{
		"orgflow":          "#!/bin/sh\necho 3.2.0\n",
		"lib/":             "",
		"lib/OrgFlow.dll":  "dll",
		"share/readme.txt": "hello",
	}, "orgflow")
	e, tempDir := newTestExtractor(t)

	dir, err := e.Extract(archive, "")
	require.NoError(t, err)
	require.Equal(t, tempDir, filepath.Dir(dir))

	data, err := os.ReadFile(filepath.Join(dir, "lib", "OrgFlow.dll"))
	require.NoError(t, err)
	require.Equal(t, "dll", string(data))
	data, err = os.ReadFile(filepath.Join(dir, "share", "readme.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dir, "orgflow"))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	}
}

func TestExtractTarGz(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "orgflow.tar.gz")
	writeTarGz(t, archive, []tar.Header{
		{Name: "bin/", Typeflag: tar.TypeDir, Mode: 0o755},
		{Name: "bin/orgflow", Typeflag: tar.TypeReg, Mode: 0o755},
		{Name: "bin/link", Typeflag: tar.TypeSymlink, Linkname: "orgflow"},
	}, map[string]string{"bin/orgflow": "binary"})
	e, _ := newTestExtractor(t)

	for _, format := range []string{"tar.gz", "TGZ"} {
		dir, err := e.Extract(archive, format)
		require.NoError(t, err, format)
		data, err := os.ReadFile(filepath.Join(dir, "bin", "orgflow"))
		require.NoError(t, err)
		require.Equal(t, "binary", string(data))
		_, err = os.Lstat(filepath.Join(dir, "bin", "link"))
		require.True(t, os.IsNotExist(err))
	}
}

func TestExtractCorruptArchive(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "orgflow.zip")
	require.NoError(t, os.WriteFile(archive, []byte("not a zip"), 0o644))
	e, tempDir := newTestExtractor(t)

	_, err := e.Extract(archive, "zip")
	var corruption *errs.CacheCorruptionError
	require.ErrorAs(t, err, &corruption)
	require.Equal(t, archive, corruption.Path)
	requireEmptyDir(t, tempDir)

	_, err = e.Extract(archive, "tgz")
	require.ErrorAs(t, err, &corruption)
	requireEmptyDir(t, tempDir)
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.tar.gz")
	writeTarGz(t, archive, []tar.Header{
		{Name: "ok.txt", Typeflag: tar.TypeReg, Mode: 0o644},
		{Name: "../escaped.txt", Typeflag: tar.TypeReg, Mode: 0o644},
	}, map[string]string{"ok.txt": "ok", "../escaped.txt": "bad"})
	e, tempDir := newTestExtractor(t)

	_, err := e.Extract(archive, "tar.gz")
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errs.KindCacheCorruption, kind)
	require.Contains(t, err.Error(), "escapes")
	requireEmptyDir(t, tempDir)
	_, statErr := os.Stat(filepath.Join(tempDir, "..", "escaped.txt"))
	require.True(t, os.IsNotExist(statErr))
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e, _ := newTestExtractor(t)
	_, err := e.Extract("whatever.rar", "rar")
	require.ErrorContains(t, err, "rar")
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errs.KindCacheCorruption, kind)
}

func TestExtractTempDirMissing(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "orgflow.zip")
	testutil.WriteZip(t, archive, map[string]string{"orgflow": "x"})
	e := NewExtractor(filepath.Join(t.TempDir(), "missing"), logging.Discard())

	_, err := e.Extract(archive, FormatZip)
	require.ErrorContains(t, err, "create extraction directory")
	var corruption *errs.CacheCorruptionError
	require.ErrorAs(t, err, &corruption)
	require.Equal(t, archive, corruption.Path)
}

func TestEntryPath(t *testing.T) {
	dest := filepath.Join(string(filepath.Separator), "dest")
	got, err := entryPath(dest, "a/b/../c")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dest, "a", "c"), got)

	for _, name := range []string{"..", "../x", "a/../../x", "/etc/passwd"} {
		_, err := entryPath(dest, name)
		require.Error(t, err, name)
	}
}
