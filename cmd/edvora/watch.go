package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/Tanya2303/Edvora/pkg/adapters/lifecycle"
	"github.com/Tanya2303/Edvora/pkg/core"
	"github.com/Tanya2303/Edvora/pkg/query"
)

var watchLimit int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a live summary that follows changes from other processes",
	Long: `Print the statistics and upcoming reminders, then print them again every
time the collection changes, whether the change comes from another edvora
process, an MCP client, or another program writing the data directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		inst, err := openInstance("watch")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		src := lifecycleadapter.NewStoreSource(inst.Store)
		if err := src.Start(ctx); err != nil {
			return err
		}
		if err := inst.Bridge.Start(ctx); err != nil {
			return err
		}

		printSummary(inst.Store.Snapshot())
		for ev := range src.Events() {
			e, ok := ev.(core.Event)
			if !ok {
				continue
			}
			fmt.Println(out.FormatInfo(fmt.Sprintf("── %s at %s", e.Type, time.Unix(e.Timestamp, 0).Format("15:04:05"))))
			printSummary(inst.Store.Snapshot())
		}
		return nil
	},
}

func printSummary(rs []core.Reminder) {
	now := time.Now()
	fmt.Println(out.FormatStats(query.ComputeStats(rs, now)))
	if upcoming := query.Upcoming(rs, watchLimit); len(upcoming) > 0 {
		fmt.Println(out.FormatList(upcoming, now))
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVarP(&watchLimit, "limit", "n", 5, "Upcoming reminders to show")
}
