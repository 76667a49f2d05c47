package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tanya2303/Edvora"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of edvora",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "edvora version %s\n", edvora.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
