package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tanya2303/Edvora/pkg/query"
)

var (
	statsJSON bool
	statsYAML bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count total, completed, pending and overdue reminders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := openInstance("cli")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		stats := query.ComputeStats(inst.Store.Snapshot(), time.Now())
		if done, err := emit(cmd.OutOrStdout(), statsJSON, statsYAML, stats); done {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.FormatStats(stats))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
	statsCmd.Flags().BoolVar(&statsYAML, "yaml", false, "Output in YAML format")
}
