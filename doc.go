// Package edvora is the Composition Root for the Edvora reminder store.
//
// It connects the reminder Store (pkg/core) with a storage adapter
// (pkg/adapters) and a Bridge (pkg/bridge) that keeps every execution
// context holding the same collection in sync.
//
// Features:
//
//   - **Single Source of Truth**: each context owns one Store; every mutation
//     persists the whole collection before subscribers are notified.
//   - **Fail-Soft Loading**: missing or malformed data yields an empty
//     collection instead of an error.
//   - **Pluggable Storage**: JSON files with fsnotify (default), SQLite, or an
//     in-memory host for tests.
//   - **Queries**: upcoming, statistics, search and facet filters live in
//     pkg/query; the study companion lives in pkg/chat.
//
// Usage:
//
//	inst, err := edvora.New("~/.edvora",
//		edvora.WithAdapter("fs"),
//		edvora.WithLogger(logger),
//	)
//	defer inst.Close()
//
//	// Keep this context in sync with other processes
//	inst.Bridge.Start(ctx)
//
//	due, _ := core.ParseDueDate("2025-01-10T09:00")
//	r, err := inst.Store.Add(ctx, core.Reminder{Title: "Essay", Subject: "English", DueDate: due})
package edvora
