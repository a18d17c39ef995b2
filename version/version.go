// Package version holds the build-time version information for the
// consul-announce binary.
package version

import "fmt"

var (
	// Version is the main version number that is being run at the
	// moment, set via -ldflags at build time.
	Version = "0.1.0"

	// VersionPrerelease is a pre-release marker for the version, such as
	// "dev" for development builds. It is empty for releases.
	VersionPrerelease = "dev"
)

// GetHumanVersion composes the parts of the version into a human
// readable string.
func GetHumanVersion() string {
	version := Version
	if VersionPrerelease != "" {
		version = fmt.Sprintf("%s-%s", version, VersionPrerelease)
	}
	return version
}
