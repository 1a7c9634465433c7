// Package version holds build metadata, set at link time:
//
//	go build -ldflags "-X github.com/tsawler/pagelayout/version.GitRelease=v1.2.0" ./cmd/pagelayout
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	GitRelease    = "dev"
	GitCommit     = ""
	GitCommitDate = ""

	GoInfo = runtime.Version()
)

func init() {
	if GitCommit != "" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			GitCommit = s.Value
		case "vcs.time":
			GitCommitDate = s.Value
		}
	}
}

// String returns a one line description of the build
func String() string {
	commit := GitCommit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("%s (%s, %s)", GitRelease, commit, GoInfo)
}
