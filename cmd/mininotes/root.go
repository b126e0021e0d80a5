package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/mininotes"
	"github.com/aretw0/mininotes/internal/platform"
)

var (
	verbose    bool
	pretty     bool
	logFile    string
	dataDir    string
	configPath string

	cfg       = platform.DefaultConfig()
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mininotes",
	Short: "A small file-backed note store",
	Long: `mininotes keeps each note as a JSON file in a single data directory.
Writes are atomic (temp file + rename) and the directory is the only source of truth.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := platform.LoadConfig(resolveConfigPath())
		if err != nil {
			return err
		}
		cfg = loaded

		flags := cmd.Flags()
		if flags.Changed("data-dir") {
			cfg.DataDir = dataDir
		}
		if flags.Changed("pretty") {
			cfg.Pretty = pretty
		}
		if flags.Changed("log-file") {
			cfg.LogFile = logFile
		}
		if verbose {
			cfg.LogLevel = "debug"
		}

		logger, closer := newLogger(os.Stderr, cfg)
		logCloser = closer
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Colorized console logs")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this rotating file")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Data directory (default: per-user app data)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: per-user app data config.yaml)")
}

// resolveConfigPath returns the --config value or the per-user default.
// Without a per-user dir only env and defaults apply.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	path, err := platform.DefaultConfigPath()
	if err != nil {
		return ""
	}
	return path
}

// openStore opens the note store described by the active configuration.
func openStore() *mininotes.Store {
	opts := append(cfg.Options(), mininotes.WithLogger(slog.Default()))
	store, err := mininotes.Open(cfg.DataDir, opts...)
	if err != nil {
		fatal("Failed to open note store", err)
	}
	return store
}
