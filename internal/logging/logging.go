// Package logging owns the process logger. It starts in bootstrap mode, writing text to
// stderr, and is upgraded once configuration is loaded to additionally write JSON lines
// to a size-rotated log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions controls rotation of the JSON log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Manager hands out a single logger whose destination can change at runtime.
type Manager struct {
	mu      sync.Mutex
	level   *slog.LevelVar
	handler *swapHandler
	logger  *slog.Logger
	stderr  io.Writer
	file    io.WriteCloser
}

// NewManager creates a manager in bootstrap mode at info level.
func NewManager() *Manager {
	return newManager(os.Stderr)
}

func newManager(stderr io.Writer) *Manager {
	level := new(slog.LevelVar)
	level.Set(DefaultLevel)

	handler := newSwapHandler(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return &Manager{
		level:   level,
		handler: handler,
		logger:  slog.New(handler),
		stderr:  stderr,
	}
}

// Logger returns the managed logger. The same pointer is valid before and after Upgrade.
func (m *Manager) Logger() *slog.Logger {
	return m.logger
}

// Upgrade adds the rotated JSON file destination and applies level.
func (m *Manager) Upgrade(opts FileOptions, level slog.Level) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if opts.Path == "" {
		return fmt.Errorf("log file path is empty")
	}

	dir := filepath.Dir(opts.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %q; %w", dir, err)
	}

	// lumberjack opens lazily; probe the path so configuration errors surface here.
	probe, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q; %w", opts.Path, err)
	}
	_ = probe.Close()

	if m.file != nil {
		_ = m.file.Close()
	}
	m.file = &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}

	m.level.Set(level)
	handlerOpts := &slog.HandlerOptions{Level: m.level}
	m.handler.swap(slogmulti.Fanout(
		slog.NewTextHandler(m.stderr, handlerOpts),
		slog.NewJSONHandler(m.file, handlerOpts),
	))

	return nil
}

// SetLevel changes the minimum level of every destination.
func (m *Manager) SetLevel(level slog.Level) {
	m.level.Set(level)
}

// Close releases the log file, if any. The logger keeps writing to stderr.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.file == nil {
		return nil
	}
	m.handler.swap(slog.NewTextHandler(m.stderr, &slog.HandlerOptions{Level: m.level}))
	err := m.file.Close()
	m.file = nil
	return err
}
