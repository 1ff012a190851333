// Package version reports the tmux-notes build.
//
// Release builds set Version and Commit with -ldflags. Builds made with
// `go install` fall back to the module version and VCS revision recorded
// by the Go toolchain.
package version

import "runtime/debug"

var (
	Version = "development"
	Commit  = "unknown"
)

const shortCommit = 7

var readBuildInfo = debug.ReadBuildInfo

// String returns "<version>" or "<version>+<short commit>".
func String() string {
	v, c := Version, Commit
	if v == "development" {
		if info, ok := readBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			if c == "unknown" {
				c = setting(info, "vcs.revision", c)
			}
		}
	}
	if c == "" || c == "unknown" {
		return v
	}
	if len(c) > shortCommit {
		c = c[:shortCommit]
	}
	return v + "+" + c
}

func setting(info *debug.BuildInfo, key, fallback string) string {
	for _, s := range info.Settings {
		if s.Key == key && s.Value != "" {
			return s.Value
		}
	}
	return fallback
}
