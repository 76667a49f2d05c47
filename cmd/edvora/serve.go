package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Tanya2303/Edvora"
	"github.com/Tanya2303/Edvora/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reminder store over MCP (stdio)",
	Long: `Start a Model Context Protocol server on stdin/stdout. Tools:

    add_reminder, list_reminders, upcoming_reminders, reminder_stats,
    update_reminder, toggle_reminder, delete_reminder, ask_companion

Example MCP client entry:

    {"mcpServers": {"edvora": {"command": "edvora", "args": ["serve"]}}}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		inst, err := openInstance("mcp")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		if err := inst.Bridge.Start(ctx); err != nil {
			return err
		}

		srv := mcpserver.NewServer(inst.Store, edvora.Version, mcpserver.WithLogger(slog.Default()))
		slog.Info("serving MCP on stdio", "adapter", cfg.Adapter, "reminders", inst.Store.Len())
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
