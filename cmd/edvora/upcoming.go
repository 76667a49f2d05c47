package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tanya2303/Edvora/pkg/query"
)

var (
	upcomingLimit int
	upcomingJSON  bool
	upcomingYAML  bool
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show pending reminders, soonest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := openInstance("cli")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		now := time.Now()
		rs := query.Upcoming(inst.Store.Snapshot(), upcomingLimit)
		if done, err := emit(cmd.OutOrStdout(), upcomingJSON, upcomingYAML, toRecords(rs, now)); done {
			return err
		}
		if len(rs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), out.FormatInfo("Nothing pending. 🎉"))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.FormatList(rs, now))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(upcomingCmd)
	upcomingCmd.Flags().IntVarP(&upcomingLimit, "limit", "n", 5, "Maximum number of reminders (0 for all)")
	upcomingCmd.Flags().BoolVar(&upcomingJSON, "json", false, "Output in JSON format")
	upcomingCmd.Flags().BoolVar(&upcomingYAML, "yaml", false, "Output in YAML format")
}
