package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tanya2303/Edvora/pkg/core"
)

var (
	showJSON bool
	showYAML bool
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := openInstance("cli")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		r, ok := inst.Store.Get(args[0])
		if !ok {
			return &core.NotFoundError{ID: args[0]}
		}

		now := time.Now()
		if done, err := emit(cmd.OutOrStdout(), showJSON, showYAML, toRecords([]core.Reminder{r}, now)[0]); done {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.FormatReminderDetail(r, now))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	showCmd.Flags().BoolVar(&showYAML, "yaml", false, "Output in YAML format")
}
