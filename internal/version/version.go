// Package version reports the cinemalens release and the build it came from.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var versionFile string

// Set at link time:
//
//	go build -ldflags "-X github.com/leefowlercu/cinemalens/internal/version.commit=$(git rev-parse --short HEAD)"
var (
	commit    string
	buildDate string
)

const unknown = "unknown"

// Info describes the running binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func (i Info) String() string {
	return fmt.Sprintf("cinemalens %s\ncommit:     %s\nbuilt:      %s\ngo version: %s",
		i.Version, i.Commit, i.BuildDate, i.GoVersion)
}

// Short returns "version (commit)".
func (i Info) Short() string {
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
}

// Get collects version information, preferring linker values over build info.
func Get() Info {
	rev, modified := vcsInfo()
	return Info{
		Version:   strings.TrimSpace(versionFile),
		Commit:    resolveCommit(commit, rev, modified),
		BuildDate: orUnknown(buildDate),
		GoVersion: runtime.Version(),
	}
}

func resolveCommit(linked, rev string, modified bool) string {
	switch {
	case linked != "":
		return linked
	case rev == "":
		return unknown
	case modified:
		return rev + "-dirty"
	default:
		return rev
	}
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

// vcsInfo reads the short revision and dirty flag stamped by `go build`.
func vcsInfo() (rev string, modified bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	return rev, modified
}
