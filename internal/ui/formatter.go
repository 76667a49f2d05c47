// Package ui renders reminders, statistics and companion messages for the
// terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tanya2303/Edvora/pkg/chat"
	"github.com/Tanya2303/Edvora/pkg/core"
	"github.com/Tanya2303/Edvora/pkg/query"
)

var (
	UserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	CompanionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")) // Soft green

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")). // Soft blue border
			Padding(0, 1)
)

// Formatter turns domain values into terminal text. With colored off the
// output is plain and stable, which is what scripts and tests see.
type Formatter struct {
	colored  bool
	markdown *MarkdownRenderer
}

// NewFormatter creates a Formatter. Companion replies go through glamour
// when markdown is set.
func NewFormatter(colored, markdown bool) *Formatter {
	f := &Formatter{colored: colored}
	if markdown {
		f.markdown = NewMarkdownRenderer(colored, 100)
	}
	return f
}

func (f *Formatter) style(s lipgloss.Style, text string) string {
	if !f.colored {
		return text
	}
	return s.Render(text)
}

// PriorityIcon returns the marker shown in front of a reminder.
func PriorityIcon(p core.Priority) string {
	switch p {
	case core.PriorityHigh:
		return "🔴"
	case core.PriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

// FormatReminder renders one reminder on a single line:
//
//	[ ] 🔴 Essay (English) · due 2025-01-10 09:00 · Overdue · 3f2a…
func (f *Formatter) FormatReminder(r core.Reminder, now time.Time) string {
	box := "[ ]"
	if r.Completed {
		box = "[x]"
	}

	title := r.Title
	if r.Subject != "" {
		title += " (" + r.Subject + ")"
	}

	due := "due " + r.DueDate.Local().Format("2006-01-02 15:04")
	urgency := query.TimeUntil(r.DueDate, now)

	var status string
	switch {
	case r.Completed:
		title = f.style(DoneStyle, title)
		status = f.style(DimStyle, "Done")
	case urgency.Kind == query.KindOverdue:
		status = f.style(ErrorStyle, urgency.String())
	case urgency.Soon:
		status = f.style(WarningStyle, urgency.String())
	default:
		status = urgency.String()
	}

	return fmt.Sprintf("%s %s %s · %s · %s %s",
		box, PriorityIcon(r.Priority), title, due, status, f.style(DimStyle, shortID(r.ID)))
}

// FormatReminderDetail renders every field of a reminder.
func (f *Formatter) FormatReminderDetail(r core.Reminder, now time.Time) string {
	var b strings.Builder
	b.WriteString(f.style(HeaderStyle, r.Title))
	b.WriteString("\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", f.style(DimStyle, fmt.Sprintf("%-9s", label+":")), value)
	}
	row("ID", r.ID)
	row("Subject", r.Subject)
	row("Due", core.FormatDueDate(r.DueDate)+" ("+query.TimeUntil(r.DueDate, now).String()+")")
	row("Priority", PriorityIcon(r.Priority)+" "+string(r.Priority))
	row("Notes", r.Notes)
	row("Done", fmt.Sprintf("%t", r.Completed))
	row("Created", r.CreatedAt.Local().Format(time.RFC3339))
	return strings.TrimRight(b.String(), "\n")
}

// FormatList renders reminders one per line, or an empty-state hint.
func (f *Formatter) FormatList(rs []core.Reminder, now time.Time) string {
	if len(rs) == 0 {
		return f.style(DimStyle, "No reminders.")
	}
	lines := make([]string, len(rs))
	for i, r := range rs {
		lines[i] = f.FormatReminder(r, now)
	}
	return strings.Join(lines, "\n")
}

// FormatStats renders the statistics block.
func (f *Formatter) FormatStats(s query.Stats) string {
	body := fmt.Sprintf("%s\nTotal:     %d\nCompleted: %d\nPending:   %d\nOverdue:   %d",
		f.style(HeaderStyle, "Reminder stats"), s.Total, s.Completed, s.Pending, s.Overdue)
	if !f.colored {
		return body
	}
	return BoxStyle.Render(body)
}

// FormatMessage renders a transcript entry.
func (f *Formatter) FormatMessage(m chat.Message) string {
	if m.Sender == chat.SenderUser {
		return f.style(UserStyle, "You: ") + m.Text
	}

	text := m.Text
	if f.markdown != nil {
		text = f.markdown.Render(text)
	}
	return f.style(CompanionStyle, "Edvora: ") + text
}

func (f *Formatter) FormatError(err error) string {
	return f.style(ErrorStyle, "Error: ") + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	return f.style(InfoStyle, info)
}

func (f *Formatter) FormatSuccess(msg string) string {
	return f.style(SuccessStyle, "✓ ") + msg
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
