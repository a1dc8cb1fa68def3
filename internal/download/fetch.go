// Package download fetches tool archives and unpacks them into staging directories.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/setup-orgflow/internal/errs"
	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// DefaultMaxBytes caps archive downloads when Options.MaxBytes is unset.
const DefaultMaxBytes int64 = 512 * 1024 * 1024

const archivePattern = "orgflow-download-*"

// Options configures a Fetcher.
type Options struct {
	// TempDir receives downloaded archives. Empty means os.TempDir().
	TempDir    string
	MaxBytes   int64
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Fetcher downloads archives to temporary files. It makes exactly one attempt per call.
type Fetcher struct {
	tempDir  string
	maxBytes int64
	client   *http.Client
	logger   *log.Logger
}

// NewFetcher returns a Fetcher for opts.
func NewFetcher(opts Options) *Fetcher {
	f := &Fetcher{
		tempDir:  opts.TempDir,
		maxBytes: opts.MaxBytes,
		client:   opts.HTTPClient,
		logger:   opts.Logger,
	}
	if f.maxBytes <= 0 {
		f.maxBytes = DefaultMaxBytes
	}
	if f.client == nil {
		f.client = http.DefaultClient
	}
	if f.logger == nil {
		f.logger = log.Default()
	}
	return f
}

// Fetch downloads url into a new temporary file and returns its path.
// The caller owns the file. Every failure is *errs.TransportError and leaves no file behind.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	file, err := os.CreateTemp(f.tempDir, archivePattern)
	if err != nil {
		return "", &errs.TransportError{URL: url, Err: fmt.Errorf(messages.DownloadCreateTempFileFmt, f.tempDir, err)}
	}
	path := file.Name()

	f.logger.Info(messages.Downloading, "url", url)
	n, err := f.copyTo(ctx, url, file)
	closeErr := file.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf(messages.DownloadCloseTempFileFmt, path, closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		var transport *errs.TransportError
		if errors.As(err, &transport) {
			return "", err
		}
		return "", &errs.TransportError{URL: url, Err: err}
	}
	f.logger.Debug(messages.Downloaded, "path", path, "bytes", n)
	return path, nil
}

func (f *Fetcher) copyTo(ctx context.Context, url string, dest io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", messages.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeoutError(err) {
			return 0, fmt.Errorf(messages.DownloadTimeoutFmt, err)
		}
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, &errs.TransportError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	n, err := io.Copy(dest, io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return n, err
	}
	if n > f.maxBytes {
		return n, fmt.Errorf(messages.DownloadTooLargeFmt, f.maxBytes)
	}
	return n, nil
}

// isTimeoutError reports whether err is a network timeout.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
