package download

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/setup-orgflow/internal/errs"
	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// Archive formats understood by Extract. An empty format means FormatZip.
const (
	FormatZip   = "zip"
	FormatTarGz = "tar.gz"
	FormatTgz   = "tgz"
)

const extractPattern = "orgflow-extract-*"

// Extractor unpacks archives into fresh temporary directories.
type Extractor struct {
	tempDir string
	logger  *log.Logger
}

// NewExtractor returns an Extractor that creates directories under tempDir.
func NewExtractor(tempDir string, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{tempDir: tempDir, logger: logger}
}

// Extract unpacks archivePath and returns the directory holding its contents.
// Every failure, including an unsupported format, is *errs.CacheCorruptionError;
// on failure the directory is removed.
func (e *Extractor) Extract(archivePath string, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	var extract func(string, string) error
	switch format {
	case "", FormatZip:
		extract = extractZip
	case FormatTarGz, FormatTgz:
		extract = extractTarGz
	default:
		return "", &errs.CacheCorruptionError{Path: archivePath, Err: fmt.Errorf(messages.ExtractUnsupportedFmt, format)}
	}

	dest, err := os.MkdirTemp(e.tempDir, extractPattern)
	if err != nil {
		return "", &errs.CacheCorruptionError{Path: archivePath, Err: fmt.Errorf(messages.ExtractCreateDirFmt, e.tempDir, err)}
	}
	e.logger.Debug(messages.Extracting, "archive", archivePath, "dest", dest)
	if err := extract(archivePath, dest); err != nil {
		_ = os.RemoveAll(dest)
		return "", &errs.CacheCorruptionError{Path: archivePath, Err: err}
	}
	e.logger.Debug(messages.Extracted, "dest", dest)
	return dest, nil
}

// entryPath joins name onto dest, rejecting absolute names and names that climb out of dest.
func entryPath(dest string, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	sep := string(filepath.Separator)
	if filepath.IsAbs(clean) || filepath.VolumeName(clean) != "" || strings.HasPrefix(clean, sep) ||
		clean == ".." || strings.HasPrefix(clean, ".."+sep) {
		return "", fmt.Errorf(messages.ExtractEntryEscapesFmt, name)
	}
	return filepath.Join(dest, clean), nil
}

func fileMode(mode os.FileMode) os.FileMode {
	perm := mode.Perm()
	if perm == 0 {
		return 0o644
	}
	return perm
}

func extractZip(archivePath, dest string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf(messages.ExtractOpenFmt, err)
	}
	defer func() { _ = reader.Close() }()

	for _, file := range reader.File {
		target, err := entryPath(dest, file.Name)
		if err != nil {
			return err
		}
		info := file.FileInfo()
		if info.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf(messages.ExtractEntryFmt, file.Name, err)
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if err := extractZipFile(file, target); err != nil {
			return fmt.Errorf(messages.ExtractEntryFmt, file.Name, err)
		}
	}
	return nil
}

func extractZipFile(file *zip.File, target string) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	return writeFile(target, rc, fileMode(file.Mode()))
}

func extractTarGz(archivePath, dest string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf(messages.ExtractOpenFmt, err)
	}
	defer func() { _ = file.Close() }()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf(messages.ExtractOpenFmt, err)
	}
	defer func() { _ = gz.Close() }()

	return untarStream(gz, dest)
}

func untarStream(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf(messages.ExtractReadHeaderFmt, err)
		}
		target, err := entryPath(dest, header.Name)
		if err != nil {
			return err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf(messages.ExtractEntryFmt, header.Name, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, fileMode(os.FileMode(header.Mode))); err != nil {
				return fmt.Errorf(messages.ExtractEntryFmt, header.Name, err)
			}
		default:
			// Links and devices are not part of tool archives.
		}
	}
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile applies the umask; restore the archived permissions.
	return os.Chmod(target, mode)
}
