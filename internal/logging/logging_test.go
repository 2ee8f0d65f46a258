package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_BootstrapWritesText(t *testing.T) {
	var stderr bytes.Buffer
	mgr := newManager(&stderr)

	mgr.Logger().Info("starting", "component", "cli")
	mgr.Logger().Debug("hidden")

	out := stderr.String()
	if !strings.Contains(out, "msg=starting") || !strings.Contains(out, "component=cli") {
		t.Errorf("bootstrap output = %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
}

func TestManager_UpgradeWritesJSONFile(t *testing.T) {
	var stderr bytes.Buffer
	mgr := newManager(&stderr)
	defer func() { _ = mgr.Close() }()

	logger := mgr.Logger()
	path := filepath.Join(t.TempDir(), "nested", "cinemalens.log")

	if err := mgr.Upgrade(FileOptions{Path: path, MaxSizeMB: 1}, slog.LevelDebug); err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}

	logger.With("strategy", "similarity").Debug("query generated")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log file is not JSON: %v\n%s", err, data)
	}
	if entry["msg"] != "query generated" {
		t.Errorf("msg = %v, want %q", entry["msg"], "query generated")
	}
	if entry["strategy"] != "similarity" {
		t.Errorf("strategy = %v, want %q", entry["strategy"], "similarity")
	}
	if !strings.Contains(stderr.String(), "query generated") {
		t.Errorf("stderr missing record after upgrade: %q", stderr.String())
	}
}

func TestManager_UpgradeRejectsEmptyPath(t *testing.T) {
	mgr := newManager(&bytes.Buffer{})
	if err := mgr.Upgrade(FileOptions{}, slog.LevelInfo); err == nil {
		t.Error("Upgrade() with empty path succeeded, want error")
	}
}

func TestManager_DerivedLoggerFollowsUpgrade(t *testing.T) {
	var stderr bytes.Buffer
	mgr := newManager(&stderr)
	defer func() { _ = mgr.Close() }()

	derived := mgr.Logger().WithGroup("graph").With("backend", "falkordb")

	path := filepath.Join(t.TempDir(), "out.log")
	if err := mgr.Upgrade(FileOptions{Path: path}, slog.LevelInfo); err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}
	derived.Info("connected")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"graph":{"backend":"falkordb"}`) {
		t.Errorf("derived logger did not reach file handler: %s", data)
	}
}

func TestManager_SetLevel(t *testing.T) {
	var stderr bytes.Buffer
	mgr := newManager(&stderr)

	mgr.SetLevel(slog.LevelError)
	mgr.Logger().Warn("suppressed")
	if stderr.Len() != 0 {
		t.Errorf("warn written at error level: %q", stderr.String())
	}
}

func TestManager_CloseWithoutUpgrade(t *testing.T) {
	if err := NewManager().Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"Error", slog.LevelError, true},
		{"verbose", DefaultLevel, false},
		{"", DefaultLevel, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
