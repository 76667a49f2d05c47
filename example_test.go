package edvora_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Tanya2303/Edvora"
	"github.com/Tanya2303/Edvora/pkg/core"
	"github.com/Tanya2303/Edvora/pkg/query"
)

// Example_basic demonstrates how to open a store, add a reminder and read
// the collection back.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "edvora-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	inst, err := edvora.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}
	defer inst.Close()

	ctx := context.Background()

	due, err := core.ParseDueDate("2099-01-10T09:00")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := inst.Store.Add(ctx, core.Reminder{Title: "Essay", Subject: "English", DueDate: due}); err != nil {
		log.Fatal(err)
	}

	for _, r := range query.Upcoming(inst.Store.Snapshot(), 5) {
		fmt.Printf("%s (%s) due %s, priority %s\n", r.Title, r.Subject, core.FormatDueDate(r.DueDate), r.Priority)
	}
	// Output:
	// Essay (English) due 2099-01-10T09:00, priority medium
}

// Example_subscribe shows how a view re-renders on every change.
func Example_subscribe() {
	inst, err := edvora.New("example", edvora.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}

	unsubscribe := inst.Store.Subscribe(func(e core.Event) {
		fmt.Println(e.Type, query.Now(inst.Store.Snapshot()).Total)
	})
	defer unsubscribe()

	ctx := context.Background()
	due, _ := core.ParseDueDate("2099-01-10T09:00")
	r, _ := inst.Store.Add(ctx, core.Reminder{Title: "Lab", Subject: "Physics", DueDate: due})
	_ = inst.Store.ToggleComplete(ctx, r.ID)
	_ = inst.Store.Delete(ctx, r.ID)
	// Output:
	// CREATE 1
	// MODIFY 1
	// DELETE 0
}
