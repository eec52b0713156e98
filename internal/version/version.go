// Package version holds build metadata set through ldflags:
//
//	go build -ldflags "-X github.com/OpenStickCommunity/gp2040-ce-docs/internal/version.Version=v0.7.6" ./cmd/docsite
package version

import "fmt"

var Version = "unknown"

// Build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String is the one line printed by --version.
func String() string {
	return fmt.Sprintf("docsite %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
