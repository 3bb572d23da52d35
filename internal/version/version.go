// Package version carries build identification, overridden at link time
// with -ldflags "-X .../internal/version.Version=... -X .../internal/version.GitSHA=...".
package version

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// GitSHA identifies the commit the binary was built from.
	GitSHA = "unknown"
)

// String returns the single-line form printed by the -version flags.
func String() string {
	return fmt.Sprintf("nlfff.report %s (%s)", Version, GitSHA)
}
