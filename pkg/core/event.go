package core

import "fmt"

// EventType represents the kind of change observed on a reminder collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"

	// EventReload means the in-memory collection was replaced from storage.
	EventReload EventType = "RELOAD"

	// EventExternal means another context modified the stored record.
	EventExternal EventType = "EXTERNAL"
)

// IsMutation reports whether the event was produced by a local Add, Update,
// Delete or ToggleComplete.
func (t EventType) IsMutation() bool {
	return t == EventCreate || t == EventModify || t == EventDelete
}

// Event represents a change in a reminder collection.
type Event struct {
	Type      EventType
	ID        string // reminder ID, empty for RELOAD and EXTERNAL
	Key       string // storage key of the collection
	Origin    string // name of the Store that emitted the event
	Timestamp int64  // Unix timestamp

	// Unsaved marks a mutation that is kept in memory but failed to persist.
	Unsaved bool
}

func (e Event) String() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s", e.Type, e.Key)
	}
	return fmt.Sprintf("%s %s/%s", e.Type, e.Key, e.ID)
}

// Listener receives store notifications synchronously.
type Listener func(Event)
