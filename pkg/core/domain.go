// Reminder is the central entity of the domain.
package core

import (
	"fmt"
	"strings"
	"time"
)

// Priority ranks how urgent a reminder is to the user.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority normalizes user input into a Priority.
// An empty string yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityMedium, nil
	}
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", s)}
	}
	return p, nil
}

// Reminder is a single user-created dated task record.
// It is agnostic to storage format; the wire encoding lives in codec.go.
type Reminder struct {
	ID        string
	Title     string
	Subject   string
	DueDate   time.Time
	Priority  Priority
	Notes     string
	Completed bool
	CreatedAt time.Time
}

// Equal reports whether two reminders carry the same field values.
// Timestamps are compared by instant, not by location.
func (r Reminder) Equal(o Reminder) bool {
	return r.ID == o.ID &&
		r.Title == o.Title &&
		r.Subject == o.Subject &&
		r.DueDate.Equal(o.DueDate) &&
		r.Priority == o.Priority &&
		r.Notes == o.Notes &&
		r.Completed == o.Completed &&
		r.CreatedAt.Equal(o.CreatedAt)
}

// Due date layouts accepted at the boundary, tried in order.
// Offset-less layouts are interpreted in the host's local time zone.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// CanonicalDueLayout is the string form used for date-prefix filtering.
const CanonicalDueLayout = "2006-01-02T15:04"

// ParseDueDate parses a user supplied due date.
// It returns a *ValidationError when the value is empty or not a timestamp.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ValidationError{Field: "dueDate", Reason: "is required"}
	}
	for _, layout := range dueDateLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ValidationError{Field: "dueDate", Reason: fmt.Sprintf("%q is not a valid date-time", s)}
}

// FormatDueDate renders t in the canonical local form (e.g. "2025-01-10T09:00").
func FormatDueDate(t time.Time) string {
	return t.In(time.Local).Format(CanonicalDueLayout)
}

// validate checks the user-editable fields and fills defaults in place.
func (r *Reminder) validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	r.Subject = strings.TrimSpace(r.Subject)
	if r.Subject == "" {
		return &ValidationError{Field: "subject", Reason: "is required"}
	}
	if r.DueDate.IsZero() {
		return &ValidationError{Field: "dueDate", Reason: "is required"}
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if !r.Priority.Valid() {
		return &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", r.Priority)}
	}
	r.DueDate = r.DueDate.Truncate(time.Second)
	return nil
}
