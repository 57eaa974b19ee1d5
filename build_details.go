package declgen

import (
	"fmt"
	"runtime"
)

var (
	// version is set via ldflags during release builds.
	// For development builds, this will show "dev"
	version = "dev"
	// commit is the short git hash of the build, set via ldflags
	commit = "unknown"
	// buildTime is the RFC3339 build timestamp, set via ldflags
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from
func Commit() string {
	return commit
}

// BuildTime returns the build timestamp
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version used to build the binary
func GoVersion() string {
	return runtime.Version()
}

// BuildInfo returns a multi-line summary of the build metadata
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}
