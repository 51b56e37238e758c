// Package version carries build metadata.
package version

// These variables are set at build time via -ldflags
// Example: go build -ldflags "-X github.com/pysugar/code-facts/internal/version.Version=v0.2.0"
var (
	// Version is the semantic version of the application
	Version = "dev"

	// Commit is the git commit hash
	Commit = "none"

	// BuildTime is the timestamp of the build
	BuildTime = "unknown"
)

// Info is the build metadata as reported by the API and CLIs.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{Version: Version, Commit: Commit, BuildTime: BuildTime}
}

// String formats the metadata on one line.
func String() string {
	return Version + " (" + Commit + ", built " + BuildTime + ")"
}
