// Package version exposes build metadata injected at link time.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the CLI version, overridden by -ldflags on release builds.
	Version = "0.1.0"
	// GitCommit is the short hash of the build commit.
	GitCommit = "unknown"
)

// Info is the resolved build description.
type Info struct {
	Version   string
	GitCommit string
	GoVersion string
	Platform  string
}

// Get returns the build description for the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("migrate-go version %s (%s, %s, commit %s)",
		i.Version, i.Platform, i.GoVersion, i.GitCommit)
}
