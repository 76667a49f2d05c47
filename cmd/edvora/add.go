package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tanya2303/Edvora/pkg/core"
)

var (
	addTitle    string
	addSubject  string
	addDue      string
	addPriority string
	addNotes    string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a reminder",
	Long: `Add a reminder. The due date accepts the local form 2025-01-10T09:00,
a plain date (2025-01-10) or RFC 3339.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		due, err := core.ParseDueDate(addDue)
		if err != nil {
			return err
		}
		priority, err := core.ParsePriority(addPriority)
		if err != nil {
			return err
		}

		inst, err := openInstance("cli")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		r, err := inst.Store.Add(context.Background(), core.Reminder{
			Title:    addTitle,
			Subject:  addSubject,
			DueDate:  due,
			Priority: priority,
			Notes:    addNotes,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), out.FormatSuccess(fmt.Sprintf("Added %q (%s)", r.Title, r.ID)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addTitle, "title", "", "Reminder title")
	addCmd.Flags().StringVar(&addSubject, "subject", "", "Subject, e.g. Mathematics")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date, e.g. 2025-01-10T09:00")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "Priority: low, medium, high")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Optional notes")
	addCmd.MarkFlagRequired("title")
	addCmd.MarkFlagRequired("subject")
	addCmd.MarkFlagRequired("due")
}
