package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders companion replies with glamour. The underlying
// renderer is built on first use and reused.
type MarkdownRenderer struct {
	colored bool
	wrap    int

	once     sync.Once
	renderer *glamour.TermRenderer
	err      error
}

// NewMarkdownRenderer creates a renderer that wraps at wrap columns.
func NewMarkdownRenderer(colored bool, wrap int) *MarkdownRenderer {
	return &MarkdownRenderer{colored: colored, wrap: wrap}
}

// Render returns content rendered for the terminal, or content unchanged if
// glamour fails.
func (m *MarkdownRenderer) Render(content string) string {
	m.once.Do(func() {
		style := glamour.WithAutoStyle()
		if !m.colored {
			style = glamour.WithStandardStyle("notty")
		}
		m.renderer, m.err = glamour.NewTermRenderer(
			style,
			glamour.WithWordWrap(m.wrap),
			glamour.WithEmoji(),
		)
	})
	if m.err != nil {
		return content
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}
