// Package chat maps free text to a fixed set of intents and renders
// templated replies from live reminder data.
package chat

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Tanya2303/Edvora/pkg/core"
	"github.com/Tanya2303/Edvora/pkg/query"
)

// Intent names what the user asked for.
type Intent string

const (
	IntentMotivation     Intent = "motivation"
	IntentDeadlines      Intent = "deadlines"
	IntentSummary        Intent = "summary"
	IntentSchedule       Intent = "schedule"
	IntentProductivity   Intent = "productivity-tips"
	IntentTimeManagement Intent = "time-management"
	IntentExamTips       Intent = "exam-tips"
	IntentGreeting       Intent = "greeting"
	IntentWellbeing      Intent = "wellbeing"
	IntentFallback       Intent = "fallback"
)

// maxDeadlines caps the deadline list in a reply.
const maxDeadlines = 5

// Context is the data a reply may interpolate.
type Context struct {
	UserName string
	Upcoming []core.Reminder // sorted, incomplete
	Stats    query.Stats
	Now      time.Time

	// Pick returns a number in [0, n). Defaults to math/rand.
	Pick func(n int) int
}

// NewContext builds a Context from a collection snapshot.
func NewContext(userName string, rs []core.Reminder, now time.Time) Context {
	return Context{
		UserName: userName,
		Upcoming: query.Upcoming(rs, 0),
		Stats:    query.ComputeStats(rs, now),
		Now:      now,
	}
}

func (c Context) name() string {
	if c.UserName == "" {
		return "there"
	}
	return c.UserName
}

func (c Context) pick(options []string) string {
	pick := c.Pick
	if pick == nil {
		pick = rand.IntN
	}
	return options[pick(len(options))]
}

// Rule maps keywords to a reply. A rule matches when the lowercased input
// contains any of its keywords.
type Rule struct {
	Intent   Intent
	Keywords []string
	Respond  func(Context) string
}

func (r Rule) matches(lower string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in rule table in match order.
// Matching is by plain substring, so "hi" also matches "this" or "think".
func DefaultRules() []Rule {
	return []Rule{
		{IntentMotivation, []string{"motivat", "quote"}, func(c Context) string { return c.pick(Quotes) }},
		{IntentDeadlines, []string{"deadline", "reminder"}, renderDeadlines},
		{IntentSummary, []string{"task", "summary"}, renderSummary},
		{IntentSchedule, []string{"schedule", "plan", "timetable"}, constant(scheduleText)},
		{IntentProductivity, []string{"productivity", "tips"}, constant(productivityText)},
		{IntentTimeManagement, []string{"time management"}, constant(timeManagementText)},
		{IntentExamTips, []string{"exam", "study"}, constant(examText)},
		{IntentGreeting, []string{"hello", "hi", "hey"}, func(c Context) string { return fmt.Sprintf(greetingText, c.name()) }},
		{IntentWellbeing, []string{"how are you", "feeling"}, constant(wellbeingText)},
	}
}

func constant(s string) func(Context) string {
	return func(Context) string { return s }
}

// Dispatcher classifies input against an ordered rule table.
// The first matching rule wins; no match yields the fallback.
type Dispatcher struct {
	rules    []Rule
	fallback func(Context) string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithRules replaces the rule table.
func WithRules(rules ...Rule) DispatcherOption {
	return func(d *Dispatcher) { d.rules = rules }
}

// WithFallback replaces the reply used when no rule matches.
func WithFallback(fn func(Context) string) DispatcherOption {
	return func(d *Dispatcher) {
		if fn != nil {
			d.fallback = fn
		}
	}
}

// NewDispatcher creates a Dispatcher with the default rules.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		rules:    DefaultRules(),
		fallback: func(c Context) string { return c.pick(fallbacks) },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) match(input string) (Rule, bool) {
	lower := strings.ToLower(input)
	for _, r := range d.rules {
		if r.matches(lower) {
			return r, true
		}
	}
	return Rule{}, false
}

// Classify returns the intent of input.
func (d *Dispatcher) Classify(input string) Intent {
	if r, ok := d.match(input); ok {
		return r.Intent
	}
	return IntentFallback
}

// Respond classifies input and renders the reply.
func (d *Dispatcher) Respond(input string, c Context) (Intent, string) {
	if r, ok := d.match(input); ok {
		return r.Intent, r.Respond(c)
	}
	return IntentFallback, d.fallback(c)
}

func renderDeadlines(c Context) string {
	if len(c.Upcoming) == 0 {
		return allCaughtUpText
	}
	n := min(len(c.Upcoming), maxDeadlines)
	lines := make([]string, 0, n)
	for _, r := range c.Upcoming[:n] {
		lines = append(lines, DeadlineLine(r, c.Now))
	}
	return fmt.Sprintf(deadlinesText, strings.Join(lines, "\n"))
}

// DeadlineLine words one reminder's deadline relative to now, using the same
// urgency classification as the list and overview.
func DeadlineLine(r core.Reminder, now time.Time) string {
	switch u := query.TimeUntil(r.DueDate, now); u.Kind {
	case query.KindOverdue:
		return fmt.Sprintf("⚠️ %s - Overdue!", r.Title)
	case query.KindDueToday:
		return fmt.Sprintf("🔥 %s - Due now!", r.Title)
	case query.KindDueInHours:
		return fmt.Sprintf("🔥 %s - Due in %s", r.Title, u)
	default:
		if u.Days == 1 {
			return fmt.Sprintf("📅 %s - Due in %s", r.Title, u)
		}
		return fmt.Sprintf("📋 %s - Due in %s", r.Title, u)
	}
}

func renderSummary(c Context) string {
	cheer := "💪"
	if c.Stats.Completed > 0 {
		cheer = "🌟"
	}
	st := c.Stats
	return fmt.Sprintf(summaryText, st.Completed, st.Pending, st.Overdue, st.Total, cheer)
}
