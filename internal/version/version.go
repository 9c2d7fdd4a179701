package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unset = "unknown"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = ""
	// Commit is the short git SHA embedded at build time.
	Commit = ""
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = ""
)

// Short returns only the semantic version string.
func Short() string {
	version, _, _ := resolve(debug.ReadBuildInfo)

	return version
}

// Full returns a human-readable version string with commit, build time and Go version.
func Full() string {
	version, commit, buildTime := resolve(debug.ReadBuildInfo)

	return fmt.Sprintf("almanac %s (commit %s, built at %s, %s)", version, commit, buildTime, runtime.Version())
}

// resolve prefers ldflags values and falls back to the module build info.
func resolve(read func() (*debug.BuildInfo, bool)) (version, commit, buildTime string) {
	version, commit, buildTime = Version, Commit, BuildTime

	if info, ok := read(); ok {
		if version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}

		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if commit == "" && len(setting.Value) >= 7 {
					commit = setting.Value[:7]
				}
			case "vcs.time":
				if buildTime == "" {
					buildTime = setting.Value
				}
			}
		}
	}

	if version == "" {
		version = "dev"
	}

	if commit == "" {
		commit = unset
	}

	if buildTime == "" {
		buildTime = unset
	}

	return version, commit, buildTime
}
