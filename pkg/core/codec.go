package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// createdAtLayout matches the millisecond ISO-8601 form browsers emit.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// wireReminder is the persisted shape of a Reminder.
type wireReminder struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	DueDate   string `json:"dueDate"`
	Priority  string `json:"priority"`
	Notes     string `json:"notes"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// EncodeCollection serializes the whole collection as a JSON array.
func EncodeCollection(rs []Reminder) ([]byte, error) {
	out := make([]wireReminder, 0, len(rs))
	for _, r := range rs {
		w := wireReminder{
			ID:        r.ID,
			Title:     r.Title,
			Subject:   r.Subject,
			DueDate:   r.DueDate.In(time.Local).Format(time.RFC3339),
			Priority:  string(r.Priority),
			Notes:     r.Notes,
			Completed: r.Completed,
		}
		if !r.CreatedAt.IsZero() {
			w.CreatedAt = r.CreatedAt.UTC().Format(createdAtLayout)
		}
		out = append(out, w)
	}
	return json.Marshal(out)
}

// DecodeCollection parses bytes produced by EncodeCollection, or by the
// original browser client. Any element that cannot be decoded fails the
// whole collection; callers decide how to fail soft.
func DecodeCollection(data []byte) ([]Reminder, error) {
	var wire []wireReminder
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}

	rs := make([]Reminder, 0, len(wire))
	for i, w := range wire {
		if w.ID == "" {
			return nil, fmt.Errorf("element %d has no id", i)
		}
		due, err := ParseDueDate(w.DueDate)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		prio, err := ParsePriority(w.Priority)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		var created time.Time
		if w.CreatedAt != "" {
			created, err = time.Parse(time.RFC3339Nano, w.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("element %d: invalid createdAt: %w", i, err)
			}
		}
		rs = append(rs, Reminder{
			ID:        w.ID,
			Title:     w.Title,
			Subject:   w.Subject,
			DueDate:   due,
			Priority:  prio,
			Notes:     w.Notes,
			Completed: w.Completed,
			CreatedAt: created,
		})
	}
	return rs, nil
}
