// Package build carries version information stamped in at link time:
//
//	go build -ldflags "-X github.com/rohmanhakim/site-word-scanner/internal/build.Version=1.2.0 \
//	  -X github.com/rohmanhakim/site-word-scanner/internal/build.Commit=$(git rev-parse --short HEAD)"
package build

import "fmt"

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// Summary is the one-line text shown by --version.
func Summary() string {
	return fmt.Sprintf("%s (built %s)", FullVersion(), BuildTime)
}
