package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOfWrappedErrors(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{&UnsupportedPlatformError{Dimension: "os", Value: "plan9"}, KindUnsupportedPlatform},
		{&VersionNotFoundError{Filter: "2.x"}, KindVersionNotFound},
		{&TransportError{URL: "https://x.test", StatusCode: 502, Status: "502 Bad Gateway"}, KindTransport},
		{&CacheCorruptionError{Path: "/c", Err: errors.New("boom")}, KindCacheCorruption},
		{&PostInstallVerificationError{Installed: "3.1.9", Expected: "3.2.0"}, KindPostInstallVerification},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			kind, ok := KindOf(fmt.Errorf("install: %w", tt.err))
			require.True(t, ok)
			require.Equal(t, tt.want, kind)
		})
	}
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	require.False(t, ok)
	_, ok = KindOf(nil)
	require.False(t, ok)
	require.Equal(t, "unknown", Kind(0).String())
}

func TestErrorMessages(t *testing.T) {
	require.Contains(t, (&UnsupportedPlatformError{Dimension: "arch", Value: "arm64"}).Error(), "arm64")
	require.Contains(t, (&UnsupportedPlatformError{Dimension: "os", Value: "plan9"}).Error(), "plan9")
	require.Contains(t, (&VersionNotFoundError{Filter: "9.x"}).Error(), "9.x")

	cause := errors.New("connection reset")
	transport := &TransportError{URL: "https://x.test/a.zip", Err: cause}
	require.Contains(t, transport.Error(), "connection reset")
	require.ErrorIs(t, transport, cause)
	require.Contains(t, (&TransportError{URL: "https://x.test", Status: "503 Service Unavailable"}).Error(), "503")

	verify := &PostInstallVerificationError{Installed: "3.1.9", Expected: "3.2.0"}
	require.Equal(t, "Installed version '3.1.9' does not match expected version '3.2.0'.", verify.Error())
}
