package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	configcmd "github.com/leefowlercu/cinemalens/cmd/config"
	"github.com/leefowlercu/cinemalens/cmd/generate"
	"github.com/leefowlercu/cinemalens/cmd/movie"
	"github.com/leefowlercu/cinemalens/cmd/recommend"
	"github.com/leefowlercu/cinemalens/cmd/version"
	"github.com/leefowlercu/cinemalens/internal/cmdutil"
	"github.com/leefowlercu/cinemalens/internal/config"
	"github.com/leefowlercu/cinemalens/internal/logging"
)

// logManager is created in init() and upgraded once config has loaded.
var logManager *logging.Manager

var (
	rootConfigPath string
	rootLogLevel   string
)

var cinemalensCmd = &cobra.Command{
	Use:   "cinemalens",
	Short: "Natural language movie recommendations from a knowledge graph",
	Long: "Cinemalens turns a natural language request such as \"movies like Heat but from the 2000s\" " +
		"into a Cypher query against a movie knowledge graph.\n\n" +
		"Entities (movies, actors, directors, genres, years) are extracted from the request by a " +
		"language model, a query strategy is chosen from the entities present, and the resulting " +
		"parameterized query is run against FalkorDB or Neo4j.",
	PersistentPreRunE: runInitialize,
}

func init() {
	logManager = logging.NewManager()
	slog.SetDefault(logManager.Logger())

	cinemalensCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config file (default: ~/.config/cinemalens/config.yaml)")
	cinemalensCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	cinemalensCmd.AddCommand(generate.GenerateCmd)
	cinemalensCmd.AddCommand(recommend.RecommendCmd)
	cinemalensCmd.AddCommand(movie.MovieCmd)
	cinemalensCmd.AddCommand(configcmd.ConfigCmd)
	cinemalensCmd.AddCommand(version.VersionCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	if rootConfigPath != "" {
		if err := config.InitFromPath(rootConfigPath); err != nil {
			return err
		}
	} else if err := config.Init(); err != nil {
		return err
	}

	cfg := config.Get()

	levelStr := cfg.Log.Level
	if rootLogLevel != "" {
		levelStr = rootLogLevel
	}
	level, ok := logging.ParseLevel(levelStr)
	if !ok {
		level = logging.DefaultLevel
		logger.Warn("invalid log level, using default", "configured", levelStr, "default", "info")
	}

	logFile, err := cmdutil.ResolvePath(cfg.Log.File)
	if err != nil {
		logger.Warn("failed to resolve log file path", "path", cfg.Log.File, "error", err)
		logManager.SetLevel(level)
		return nil
	}

	opts := logging.FileOptions{
		Path:       logFile,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
	if err := logManager.Upgrade(opts, level); err != nil {
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
		logManager.SetLevel(level)
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	cinemalensCmd.SilenceErrors = true
	cinemalensCmd.SilenceUsage = true

	defer func() { _ = logManager.Close() }()

	err := cinemalensCmd.Execute()

	if err != nil {
		cmd, _, _ := cinemalensCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = cinemalensCmd
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Fprintln(os.Stderr)
			cmd.SetOut(os.Stderr)
			_ = cmd.Usage()
		}

		return err
	}

	return nil
}
