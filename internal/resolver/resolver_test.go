package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/setup-orgflow/internal/errs"
	"github.com/conn-castle/setup-orgflow/internal/logging"
	"github.com/conn-castle/setup-orgflow/internal/runtimeid"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func linuxX64(t *testing.T) runtimeid.ID {
	t.Helper()
	id, err := runtimeid.FromHost("linux", "amd64")
	require.NoError(t, err)
	return id
}

func newTestResolver(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Options{
		BaseURL:    server.URL + "/download/v2/",
		ProductID:  "cli",
		RuntimeID:  linuxX64(t),
		HTTPClient: server.Client(),
		Logger:     logging.Discard(),
	})
}

const descriptorJSON = `{
  "fullName": "orgflow-3.2.0-linux-x64.zip",
  "downloadUrl": "https://cdn.example.test/orgflow-3.2.0-linux-x64.zip",
  "productId": "cli",
  "versionString": "3.2.0",
  "version": {"major": 3, "minor": 2, "patch": 0, "prerelease": "", "build": ""},
  "runtimeId": "linux-x64",
  "format": "zip"
}`

func TestResolveSuccess(t *testing.T) {
	var gotPath, gotQuery string
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotQuery = req.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(descriptorJSON))
	})

	d, err := r.Resolve(context.Background(), Constraint{})
	require.NoError(t, err)
	require.Equal(t, "/download/v2/cli/linux-x64/latest/zip", gotPath)
	require.Empty(t, gotQuery)
	require.Equal(t, "3.2.0", d.VersionString)
	require.Equal(t, "https://cdn.example.test/orgflow-3.2.0-linux-x64.zip", d.DownloadURL)
	require.Equal(t, Version{Major: 3, Minor: 2}, d.Version)
	require.Equal(t, "linux-x64", d.RuntimeID)
	require.Equal(t, "zip", d.Format)
}

func TestResolveForwardsConstraint(t *testing.T) {
	var filter, prerelease string
	var hasPrerelease bool
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		filter = req.URL.Query().Get("versionFilter")
		prerelease = req.URL.Query().Get("includePrerelease")
		_, hasPrerelease = req.URL.Query()["includePrerelease"]
		_, _ = w.Write([]byte(descriptorJSON))
	})

	_, err := r.Resolve(context.Background(), Constraint{Filter: ">=3.0.0 <4.0.0", IncludePrerelease: true})
	require.NoError(t, err)
	require.Equal(t, ">=3.0.0 <4.0.0", filter)
	require.Equal(t, "true", prerelease)

	_, err = r.Resolve(context.Background(), Constraint{Filter: "3.x"})
	require.NoError(t, err)
	require.Equal(t, "3.x", filter)
	require.False(t, hasPrerelease)
}

func TestResolveNotFound(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := r.Resolve(context.Background(), Constraint{Filter: "2.x"})
	require.Error(t, err)
	var notFound *errs.VersionNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "2.x", notFound.Filter)
	require.Contains(t, err.Error(), "2.x")

	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errs.KindVersionNotFound, kind)
}

func TestResolveUnexpectedStatusIsTransport(t *testing.T) {
	calls := 0
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := r.Resolve(context.Background(), Constraint{})
	var transport *errs.TransportError
	require.ErrorAs(t, err, &transport)
	require.Equal(t, http.StatusServiceUnavailable, transport.StatusCode)
	require.Equal(t, 1, calls, "resolver must not retry")
}

func TestResolveNetworkFailureIsTransport(t *testing.T) {
	r := New(Options{
		BaseURL:   "https://service.invalid/download/v2",
		ProductID: "cli",
		RuntimeID: linuxX64(t),
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})},
		Logger: logging.Discard(),
	})

	_, err := r.Resolve(context.Background(), Constraint{})
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errs.KindTransport, kind)
	require.Contains(t, err.Error(), "connection refused")
}

func TestResolveMalformedBody(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})
	_, err := r.Resolve(context.Background(), Constraint{})
	var transport *errs.TransportError
	require.ErrorAs(t, err, &transport)
}

func TestResolveMissingFields(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"versionString":"3.2.0"}`))
	})
	_, err := r.Resolve(context.Background(), Constraint{})
	require.ErrorContains(t, err, "downloadUrl")

	r = newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"downloadUrl":"https://x.test/a.zip"}`))
	})
	_, err = r.Resolve(context.Background(), Constraint{})
	require.ErrorContains(t, err, "versionString")
}

func TestLookupURLEscapesFilter(t *testing.T) {
	r := New(Options{BaseURL: "https://svc.test/download/v2", ProductID: "cli", RuntimeID: linuxX64(t)})
	got, err := r.LookupURL(Constraint{Filter: "[3.0,4.0)", IncludePrerelease: true})
	require.NoError(t, err)
	require.Equal(t, "https://svc.test/download/v2/cli/linux-x64/latest/zip?includePrerelease=true&versionFilter=%5B3.0%2C4.0%29", got)
}
