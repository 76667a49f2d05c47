package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a reminder",
	Long:    `Delete a reminder by ID. Deleting an ID that no longer exists succeeds.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := openInstance("cli")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		if err := inst.Store.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.FormatSuccess(fmt.Sprintf("Deleted %s", args[0])))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
