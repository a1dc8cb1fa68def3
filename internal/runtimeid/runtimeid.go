// Package runtimeid maps the host platform to the runtime identifier used by the
// download service to select a platform-specific archive.
package runtimeid

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/conn-castle/setup-orgflow/internal/errs"
	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// OS is a supported operating system.
type OS int

// Arch is a supported CPU architecture.
type Arch int

// Supported operating systems.
const (
	Linux OS = iota + 1
	MacOS
	Windows
)

// Supported CPU architectures.
const (
	X64 Arch = iota + 1
	X86
)

// String returns the download service token for the OS.
func (o OS) String() string {
	switch o {
	case Linux:
		return "linux"
	case MacOS:
		return "osx"
	case Windows:
		return "win"
	default:
		return ""
	}
}

// String returns the download service token for the architecture.
func (a Arch) String() string {
	switch a {
	case X64:
		return "x64"
	case X86:
		return "x86"
	default:
		return ""
	}
}

// ID is a canonical platform identifier. The zero value is not a valid ID;
// use Identify, FromHost or Parse.
type ID struct {
	os   OS
	arch Arch
}

// OS returns the operating system component.
func (id ID) OS() OS { return id.os }

// Arch returns the architecture component.
func (id ID) Arch() Arch { return id.arch }

// String returns the identifier as "<os>-<arch>", e.g. "linux-x64".
func (id ID) String() string {
	return id.os.String() + "-" + id.arch.String()
}

// Identify returns the identifier of the running process's platform.
func Identify() (ID, error) {
	return FromHost(runtime.GOOS, runtime.GOARCH)
}

// FromHost maps Go platform names (GOOS, GOARCH) to an identifier.
func FromHost(goos string, goarch string) (ID, error) {
	var id ID
	switch goos {
	case "linux":
		id.os = Linux
	case "darwin":
		id.os = MacOS
	case "windows":
		id.os = Windows
	default:
		return ID{}, &errs.UnsupportedPlatformError{Dimension: "os", Value: goos}
	}

	switch goarch {
	case "amd64":
		id.arch = X64
	case "386":
		id.arch = X86
	default:
		return ID{}, &errs.UnsupportedPlatformError{Dimension: "arch", Value: goarch}
	}
	return id, nil
}

// Parse reads an identifier in "<os>-<arch>" form.
func Parse(raw string) (ID, error) {
	osToken, archToken, ok := strings.Cut(strings.TrimSpace(raw), "-")
	if !ok {
		return ID{}, fmt.Errorf(messages.RuntimeIDInvalidFmt, raw)
	}
	var id ID
	switch osToken {
	case "linux":
		id.os = Linux
	case "osx":
		id.os = MacOS
	case "win":
		id.os = Windows
	default:
		return ID{}, &errs.UnsupportedPlatformError{Dimension: "os", Value: osToken}
	}
	switch archToken {
	case "x64":
		id.arch = X64
	case "x86":
		id.arch = X86
	default:
		return ID{}, &errs.UnsupportedPlatformError{Dimension: "arch", Value: archToken}
	}
	return id, nil
}

// ExecutableName returns the file name of an executable called name on the platform.
func (id ID) ExecutableName(name string) string {
	if id.os == Windows {
		return name + ".exe"
	}
	return name
}
