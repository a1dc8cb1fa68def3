// Package errs defines the closed set of fatal install errors.
// Callers branch on the error kind with KindOf instead of matching message text.
package errs

import (
	"errors"
	"fmt"

	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// Kind identifies one variant of the install error taxonomy.
type Kind int

// Error kinds. Every kind is fatal to the install.
const (
	KindUnsupportedPlatform Kind = iota + 1
	KindVersionNotFound
	KindTransport
	KindCacheCorruption
	KindPostInstallVerification
)

// String returns a stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnsupportedPlatform:
		return "unsupported-platform"
	case KindVersionNotFound:
		return "version-not-found"
	case KindTransport:
		return "transport"
	case KindCacheCorruption:
		return "cache-corruption"
	case KindPostInstallVerification:
		return "post-install-verification"
	default:
		return "unknown"
	}
}

type kinded interface {
	error
	Kind() Kind
}

// KindOf returns the kind of the first typed install error in err's chain.
func KindOf(err error) (Kind, bool) {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind(), true
	}
	return 0, false
}

// UnsupportedPlatformError reports a host OS or CPU architecture outside the supported set.
type UnsupportedPlatformError struct {
	// Dimension is "os" or "arch".
	Dimension string
	Value     string
}

func (e *UnsupportedPlatformError) Error() string {
	if e.Dimension == "arch" {
		return fmt.Sprintf(messages.ErrUnsupportedArchFmt, e.Value)
	}
	return fmt.Sprintf(messages.ErrUnsupportedOSFmt, e.Value)
}

// Kind implements the taxonomy.
func (e *UnsupportedPlatformError) Kind() Kind { return KindUnsupportedPlatform }

// VersionNotFoundError reports that the download service has no version matching the constraint.
type VersionNotFoundError struct {
	Filter            string
	IncludePrerelease bool
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf(messages.ErrVersionNotFoundFmt, e.Filter, e.IncludePrerelease)
}

// Kind implements the taxonomy.
func (e *VersionNotFoundError) Kind() Kind { return KindVersionNotFound }

// TransportError reports a network failure or unexpected response from the
// download service or the archive host.
type TransportError struct {
	URL string
	// StatusCode is zero when no response was received.
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(messages.ErrTransportFmt, e.URL, e.Err)
	}
	return fmt.Sprintf(messages.ErrTransportStatusFmt, e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Kind implements the taxonomy.
func (e *TransportError) Kind() Kind { return KindTransport }

// CacheCorruptionError reports an extraction or cache commit failure.
type CacheCorruptionError struct {
	Path string
	Err  error
}

func (e *CacheCorruptionError) Error() string {
	return fmt.Sprintf(messages.ErrCacheCorruptionFmt, e.Path, e.Err)
}

func (e *CacheCorruptionError) Unwrap() error { return e.Err }

// Kind implements the taxonomy.
func (e *CacheCorruptionError) Kind() Kind { return KindCacheCorruption }

// PostInstallVerificationError reports that the version found after activation
// differs from the version that was installed.
type PostInstallVerificationError struct {
	// Installed is empty when the tool could not be probed at all.
	Installed string
	Expected  string
}

func (e *PostInstallVerificationError) Error() string {
	return fmt.Sprintf(messages.ErrPostInstallVerificationFmt, e.Installed, e.Expected)
}

// Kind implements the taxonomy.
func (e *PostInstallVerificationError) Kind() Kind { return KindPostInstallVerification }
