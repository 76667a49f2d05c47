// Package query provides pure functions over a reminder collection.
//
// Nothing here mutates its input or touches persistence, so every function
// is safe to call from any context with any snapshot.
package query

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Tanya2303/Edvora/pkg/core"
)

// Upcoming returns the incomplete reminders sorted ascending by due date.
// Reminders with equal due dates keep their collection order.
// A limit <= 0 returns all of them.
func Upcoming(rs []core.Reminder, limit int) []core.Reminder {
	out := make([]core.Reminder, 0, len(rs))
	for _, r := range rs {
		if !r.Completed {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Completed returns the completed reminders in collection order.
func Completed(rs []core.Reminder) []core.Reminder {
	out := make([]core.Reminder, 0)
	for _, r := range rs {
		if r.Completed {
			out = append(out, r)
		}
	}
	return out
}

// Stats summarizes a collection at a point in time.
type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	Pending   int `json:"pending" yaml:"pending"`
	Overdue   int `json:"overdue" yaml:"overdue"`
}

// ComputeStats counts the collection. Overdue reminders are the incomplete
// ones due strictly before now.
func ComputeStats(rs []core.Reminder, now time.Time) Stats {
	var st Stats
	st.Total = len(rs)
	for _, r := range rs {
		if r.Completed {
			st.Completed++
			continue
		}
		if r.DueDate.Before(now) {
			st.Overdue++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

// Now computes stats against the wall clock at call time. The result is not
// cached: two calls seconds apart may legitimately differ.
func Now(rs []core.Reminder) Stats {
	return ComputeStats(rs, time.Now())
}

// Search returns the reminders whose title contains term, ignoring case.
// An empty term matches everything.
func Search(rs []core.Reminder, term string) []core.Reminder {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]core.Reminder, 0, len(rs))
	for _, r := range rs {
		if term == "" || strings.Contains(strings.ToLower(r.Title), term) {
			out = append(out, r)
		}
	}
	return out
}

// Facets narrows a collection. Empty fields match everything.
type Facets struct {
	Subject  string
	Priority core.Priority

	// DatePrefix matches against the canonical due date form
	// ("2025-01-10T09:00"), so "2025-01-10" selects a whole day.
	DatePrefix string
}

// Match reports whether r satisfies every non-empty facet.
func (f Facets) Match(r core.Reminder) bool {
	if f.Subject != "" && r.Subject != f.Subject {
		return false
	}
	if f.Priority != "" && r.Priority != f.Priority {
		return false
	}
	if f.DatePrefix != "" && !strings.HasPrefix(core.FormatDueDate(r.DueDate), f.DatePrefix) {
		return false
	}
	return true
}

// Filter returns the reminders matching all supplied facets, in collection order.
func Filter(rs []core.Reminder, f Facets) []core.Reminder {
	out := make([]core.Reminder, 0, len(rs))
	for _, r := range rs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Subjects returns the distinct subjects of the collection, sorted.
func Subjects(rs []core.Reminder) []string {
	seen := make(map[string]struct{}, len(rs))
	out := make([]string, 0)
	for _, r := range rs {
		if _, ok := seen[r.Subject]; ok {
			continue
		}
		seen[r.Subject] = struct{}{}
		out = append(out, r.Subject)
	}
	slices.Sort(out)
	return out
}

// DefaultSubjects is the subject list offered by the reminder form.
var DefaultSubjects = []string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"English",
	"History",
	"Geography",
	"Computer Science",
	"Economics",
	"Psychology",
	"Other",
}
