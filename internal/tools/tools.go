//go:build tools
// +build tools

// Package tools pins the development tools used by the Makefile targets.
package tools

import (
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
	_ "gotest.tools/gotestsum"
)
