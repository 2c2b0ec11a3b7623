// Package version carries build metadata injected via ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/confdocs/internal/version.Version=v0.3.0"
package version

import "fmt"

// Version contains the application version information.
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the metadata for --version output.
func String() string {
	return fmt.Sprintf("confdocs %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
