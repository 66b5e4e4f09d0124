// Package version holds build-time version information.
// Values are injected at build time via -ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	// GitRelease is the release tag (e.g. v0.3.0), set via ldflags.
	GitRelease = "dev"

	// GitCommit is the git commit hash, set via ldflags.
	GitCommit = "unknown"

	// GitCommitDate is the commit date, set via ldflags.
	GitCommitDate = "unknown"

	// GoInfo describes the Go toolchain and platform.
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)
