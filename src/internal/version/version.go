// FILE: actionlog/src/internal/version/version.go
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Set at compile time via -ldflags "-X actionlog/src/internal/version.Version=..."
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Returns a formatted version string. Dev builds fall back to VCS data
// embedded by the Go toolchain when ldflags were not supplied.
func String() string {
	commit, built := GitCommit, BuildTime
	if commit == "unknown" || built == "unknown" {
		vcsCommit, vcsTime := buildSettings()
		if commit == "unknown" && vcsCommit != "" {
			commit = vcsCommit
		}
		if built == "unknown" && vcsTime != "" {
			built = vcsTime
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, built)
}

// Returns just the version tag
func Short() string {
	return Version
}

func buildSettings() (commit, when string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
			if len(commit) > 12 {
				commit = commit[:12]
			}
		case "vcs.time":
			when = s.Value
		}
	}
	return commit, when
}
