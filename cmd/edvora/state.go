package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print internal state of the store, bridge and storage as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := openInstance("cli")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"component": inst.ComponentType(),
			"state":     inst.State(),
		})
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
