package version

import (
	"regexp"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(info.Version) {
		t.Errorf("Version = %q, want semver", info.Version)
	}
	if info.Version != strings.TrimSpace(info.Version) {
		t.Errorf("Version = %q has surrounding whitespace", info.Version)
	}
	if info.Commit == "" || info.BuildDate == "" || info.GoVersion == "" {
		t.Errorf("Get() = %+v, want every field populated", info)
	}
}

func TestResolveCommit(t *testing.T) {
	tests := []struct {
		name     string
		linked   string
		rev      string
		modified bool
		want     string
	}{
		{"linker wins", "abc1234", "def5678", true, "abc1234"},
		{"build info", "", "def5678", false, "def5678"},
		{"dirty tree", "", "def5678", true, "def5678-dirty"},
		{"nothing", "", "", false, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveCommit(tt.linked, tt.rev, tt.modified); got != tt.want {
				t.Errorf("resolveCommit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfoFormatting(t *testing.T) {
	info := Info{Version: "1.2.3", Commit: "abc1234", BuildDate: "2026-01-01T00:00:00Z", GoVersion: "go1.25.1"}

	want := "cinemalens 1.2.3\ncommit:     abc1234\nbuilt:      2026-01-01T00:00:00Z\ngo version: go1.25.1"
	if got := info.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if got := info.Short(); got != "1.2.3 (abc1234)" {
		t.Errorf("Short() = %q", got)
	}
}
