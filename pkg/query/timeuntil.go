package query

import (
	"fmt"
	"time"
)

// Kind is the coarse urgency classification shared by every view.
type Kind string

const (
	KindOverdue    Kind = "overdue"
	KindDueToday   Kind = "dueToday"
	KindDueInDays  Kind = "dueInNDays"
	KindDueInHours Kind = "dueInNHours"
)

const day = 24 * time.Hour

// Urgency describes how far away a due date is.
type Urgency struct {
	Kind  Kind
	Days  int // whole days remaining, set for KindDueInDays
	Hours int // whole hours remaining, set for KindDueInHours

	// Soon is set when the due date is past or less than a day away.
	Soon bool
}

// TimeUntil classifies due relative to now.
// Remaining time is floored: 1d23h is "1 day", 59m is due today.
func TimeUntil(due, now time.Time) Urgency {
	diff := due.Sub(now)
	if diff < 0 {
		return Urgency{Kind: KindOverdue, Soon: true}
	}
	soon := diff < day
	if days := int(diff / day); days > 0 {
		return Urgency{Kind: KindDueInDays, Days: days, Soon: soon}
	}
	if hours := int(diff / time.Hour); hours > 0 {
		return Urgency{Kind: KindDueInHours, Hours: hours, Soon: soon}
	}
	return Urgency{Kind: KindDueToday, Soon: soon}
}

func (u Urgency) String() string {
	switch u.Kind {
	case KindOverdue:
		return "Overdue"
	case KindDueInDays:
		return plural(u.Days, "day")
	case KindDueInHours:
		return plural(u.Hours, "hour")
	default:
		return "Due now"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
