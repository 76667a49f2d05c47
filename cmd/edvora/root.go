package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tanya2303/Edvora"
	"github.com/Tanya2303/Edvora/internal/config"
	"github.com/Tanya2303/Edvora/internal/ui"
)

var (
	verbose    bool
	configPath string
	dataDir    string
	adapter    string

	cfg *config.Config
	out *ui.Formatter
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "edvora",
	Short: "A personal reminder store with a study companion",
	Long: `Edvora keeps your assignments, exams and study tasks in one place.
Every terminal (and every MCP client) sees the same reminders: changes made
in one process are picked up by the others.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		switch {
		case dataDir != "":
			loaded.DataDir = config.ExpandPath(dataDir)
		default:
			// A course folder with its own .edvora wins over the global store.
			if cwd, err := os.Getwd(); err == nil {
				if dir, ok := edvora.ProjectDataDir(cwd); ok {
					slog.Debug("using project-local store", "path", dir)
					loaded.DataDir = dir
				}
			}
		}
		if adapter != "" {
			loaded.Adapter = adapter
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		cfg = loaded
		out = ui.NewFormatter(cfg.UI.ColoredOutput, cfg.UI.Markdown)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openInstance opens the configured store for one command run.
func openInstance(name string, extra ...edvora.Option) (*edvora.Instance, error) {
	opts := []edvora.Option{
		edvora.WithAdapter(cfg.Adapter),
		edvora.WithStoreKey(cfg.Store.Key),
		edvora.WithName(name),
		edvora.WithPollInterval(cfg.Watch.PollInterval()),
		edvora.WithDevSafety(cfg.DevSafety),
		edvora.WithLogger(slog.Default()),
		edvora.WithPersistErrorHandler(func(err error) {
			fmt.Fprintln(os.Stderr, out.FormatError(fmt.Errorf("change kept in memory only: %w", err)))
		}),
	}
	return edvora.New(cfg.DataDir, append(opts, extra...)...)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.GetDefaultConfigPath(), "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the data directory")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Override the storage adapter (fs, sqlite, memory)")
}
