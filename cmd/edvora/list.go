package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tanya2303/Edvora/pkg/core"
	"github.com/Tanya2303/Edvora/pkg/query"
)

var (
	listJSON     bool
	listYAML     bool
	listSearch   string
	listSubject  string
	listPriority string
	listDate     string
	listSubjects bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	Long: `List reminders in the order they were added. --search matches titles
ignoring case; --subject, --priority and --date (a due date prefix such as
2025-01 or 2025-01-10) narrow the result further.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listJSON && listYAML {
			return fmt.Errorf("--json and --yaml are mutually exclusive")
		}

		inst, err := openInstance("cli")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		snapshot := inst.Store.Snapshot()
		if listSubjects {
			for _, s := range query.Subjects(snapshot) {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		}

		facets := query.Facets{
			Subject:    listSubject,
			DatePrefix: listDate,
		}
		if listPriority != "" {
			p, err := core.ParsePriority(listPriority)
			if err != nil {
				return err
			}
			facets.Priority = p
		}

		now := time.Now()
		rs := query.Filter(query.Search(snapshot, listSearch), facets)

		if done, err := emit(cmd.OutOrStdout(), listJSON, listYAML, toRecords(rs, now)); done {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.FormatList(rs, now))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Case-insensitive title search")
	listCmd.Flags().StringVar(&listSubject, "subject", "", "Filter by subject")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "Filter by priority")
	listCmd.Flags().StringVar(&listDate, "date", "", "Filter by due date prefix")
	listCmd.Flags().BoolVar(&listSubjects, "subjects", false, "Print the distinct subjects instead")
}
