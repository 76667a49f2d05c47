package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Mark a reminder done, or pending again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := openInstance("cli")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		if err := inst.Store.ToggleComplete(context.Background(), args[0]); err != nil {
			return err
		}

		r, _ := inst.Store.Get(args[0])
		state := "pending"
		if r.Completed {
			state = "done"
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.FormatSuccess(fmt.Sprintf("%q is now %s", r.Title, state)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
