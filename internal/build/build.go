// Package build provides build-time information for the CLI application.
// Version is read from the VERSION file or set via ldflags during build.
package build

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Set via ldflags:
//
//	-X github.com/tacogips/fsflash/internal/build.version=x.y.z
//	-X github.com/tacogips/fsflash/internal/build.GitCommit=abc123
//	-X github.com/tacogips/fsflash/internal/build.BuildDate=2026-01-01
var (
	version   string
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Version returns the application version.
// Priority: ldflags > embedded VERSION file
func Version() string {
	if version != "" {
		return version
	}
	if v := strings.TrimSpace(embeddedVersion); v != "" {
		return v
	}
	return "dev"
}
