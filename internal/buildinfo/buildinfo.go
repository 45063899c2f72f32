package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/aalvaropc/polycheck/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	v, c := Version, Commit
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			v, c = fromModule(bi, v, c)
		}
	}
	return fmt.Sprintf("polycheck %s (commit=%s, date=%s)", v, c, Date)
}

// fromModule fills version and commit from `go install` metadata when the
// binary was not stamped.
func fromModule(bi *debug.BuildInfo, version, commit string) (string, string) {
	if mv := bi.Main.Version; mv != "" && mv != "(devel)" {
		version = mv
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && commit == "none" && s.Value != "" {
			commit = s.Value
			if len(commit) > 12 {
				commit = commit[:12]
			}
		}
	}
	return version, commit
}
