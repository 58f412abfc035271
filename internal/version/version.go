// Package version holds build information set with -ldflags, e.g.
//
//	-X github.com/itsmostafa/godoxy/internal/version.Version=v1.0.0
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns the version with its commit and build date.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
