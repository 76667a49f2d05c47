package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Tanya2303/Edvora"
	"github.com/Tanya2303/Edvora/pkg/core"
)

func main() {
	count := flag.Int("count", 500, "Number of reminders to add")
	adapter := flag.String("adapter", "fs", "Storage adapter: fs, sqlite")
	keep := flag.Bool("keep", false, "Keep the benchmark data dir after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "edvora_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	open := func(name string) *edvora.Instance {
		inst, err := edvora.New(benchDir,
			edvora.WithAdapter(*adapter),
			edvora.WithName(name),
			edvora.WithLogger(logger),
			edvora.WithPollInterval(20*time.Millisecond),
		)
		if err != nil {
			panic(err)
		}
		return inst
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer := open("writer")
	defer writer.Close()

	// Every Add rewrites the whole collection, so cost grows with its size.
	fmt.Printf("Adding %d reminders (%s) in %s...\n", *count, *adapter, benchDir)
	due := time.Now().Add(72 * time.Hour)
	startAdd := time.Now()
	for i := 0; i < *count; i++ {
		_, err := writer.Store.Add(ctx, core.Reminder{
			Title:   fmt.Sprintf("Reminder %d", i),
			Subject: "Benchmark",
			DueDate: due.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			panic(err)
		}
	}
	addDuration := time.Since(startAdd)

	// Cold load in a fresh instance, as a new CLI command run would do.
	startLoad := time.Now()
	reader := open("reader")
	defer reader.Close()
	loadDuration := time.Since(startLoad)

	// Propagation: time until the reader observes one more change.
	if err := reader.Bridge.Start(ctx); err != nil {
		panic(err)
	}
	for !reader.Bridge.Watching() {
		time.Sleep(time.Millisecond)
	}
	reloaded := make(chan struct{}, 1)
	unsubscribe := reader.Store.Subscribe(func(e core.Event) {
		if e.Type == core.EventReload {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	startSync := time.Now()
	if _, err := writer.Store.Add(ctx, core.Reminder{Title: "Last", Subject: "Benchmark", DueDate: due}); err != nil {
		panic(err)
	}
	var syncDuration time.Duration
	select {
	case <-reloaded:
		syncDuration = time.Since(startSync)
	case <-time.After(5 * time.Second):
		syncDuration = -1
	}

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d reminders, %s):\n", *count, *adapter)
	fmt.Printf("  Add:       %v (%v/op)\n", addDuration, addDuration/time.Duration(*count))
	fmt.Printf("  Cold load: %v (Items: %d)\n", loadDuration, reader.Store.Len())
	if syncDuration < 0 {
		fmt.Printf("  Sync:      timed out\n")
	} else {
		fmt.Printf("  Sync:      %v\n", syncDuration)
	}
	fmt.Printf("--------------------------------------------------\n")
}
