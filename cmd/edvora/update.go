package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tanya2303/Edvora/pkg/core"
)

var (
	updateTitle    string
	updateSubject  string
	updateDue      string
	updatePriority string
	updateNotes    string
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change fields of a reminder",
	Long:  `Change the fields given as flags. Fields without a flag keep their value.`,
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

		flags := cmd.Flags()
		if flags.Changed("title") {
			r.Title = updateTitle
		}
		if flags.Changed("subject") {
			r.Subject = updateSubject
		}
		if flags.Changed("due") {
			if r.DueDate, err = core.ParseDueDate(updateDue); err != nil {
				return err
			}
		}
		if flags.Changed("priority") {
			if r.Priority, err = core.ParsePriority(updatePriority); err != nil {
				return err
			}
		}
		if flags.Changed("notes") {
			r.Notes = updateNotes
		}

		if err := inst.Store.Update(context.Background(), r); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.FormatSuccess(fmt.Sprintf("Updated %q", r.Title)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateSubject, "subject", "", "New subject")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "New due date")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "New priority")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "New notes (empty clears them)")
}
