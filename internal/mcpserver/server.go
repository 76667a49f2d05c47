// Package mcpserver exposes a reminder Store over the Model Context Protocol
// so assistants can manage reminders through tool calls.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Tanya2303/Edvora/pkg/chat"
	"github.com/Tanya2303/Edvora/pkg/core"
	"github.com/Tanya2303/Edvora/pkg/query"
)

const serverName = "edvora"

// Server is the MCP server for reminder management.
type Server struct {
	mcpServer *server.MCPServer
	store     *core.Store
	companion *chat.Companion
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCompanion sets the companion answering ask_companion. By default one
// is created over the store without a thinking delay.
func WithCompanion(c *chat.Companion) Option {
	return func(s *Server) { s.companion = c }
}

// WithClock overrides the clock used for statistics and urgency.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the logger for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP server backed by the given store.
func NewServer(store *core.Store, version string, opts ...Option) *Server {
	s := &Server{
		store:  store,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.companion == nil {
		s.companion = chat.NewCompanion(store, chat.WithDelay(0, 0), chat.WithCompanionClock(s.now))
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves tool calls on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a new reminder with a title, subject, due date, priority and optional notes"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
			mcp.WithString("subject", mcp.Required(), mcp.Description("Course or subject, e.g. Mathematics")),
			mcp.WithString("due_date", mcp.Required(), mcp.Description("Due date, e.g. 2025-01-15T09:00 (local time) or RFC3339")),
			mcp.WithString("priority", mcp.Description("Priority: low, medium, high (default: medium)"), mcp.Enum("low", "medium", "high")),
			mcp.WithString("notes", mcp.Description("Optional notes")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List reminders, optionally searched by text and filtered by subject, priority or due date prefix"),
			mcp.WithString("search", mcp.Description("Case-insensitive text matched against the title")),
			mcp.WithString("subject", mcp.Description("Exact subject")),
			mcp.WithString("priority", mcp.Description("Exact priority"), mcp.Enum("low", "medium", "high")),
			mcp.WithString("date", mcp.Description("Due date prefix, e.g. 2025-01 or 2025-01-15")),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("upcoming_reminders",
			mcp.WithDescription("List pending reminders ordered by due date, soonest first"),
			mcp.WithNumber("limit", mcp.Description("Maximum number of reminders (default 5, 0 for all)")),
		),
		s.handleUpcomingReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("reminder_stats",
			mcp.WithDescription("Count total, completed, pending and overdue reminders"),
		),
		s.handleReminderStats,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("update_reminder",
			mcp.WithDescription("Update a reminder's fields; omitted fields keep their value"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("subject", mcp.Description("New subject")),
			mcp.WithString("due_date", mcp.Description("New due date")),
			mcp.WithString("priority", mcp.Description("New priority"), mcp.Enum("low", "medium", "high")),
			mcp.WithString("notes", mcp.Description("New notes")),
		),
		s.handleUpdateReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("toggle_reminder",
			mcp.WithDescription("Flip a reminder between pending and completed"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleToggleReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleDeleteReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("ask_companion",
			mcp.WithDescription("Ask the study companion about deadlines, progress, or study tips"),
			mcp.WithString("message", mcp.Required(), mcp.Description("What to ask")),
		),
		s.handleAskCompanion,
	)
}

// reminderView is the JSON shape returned by tools.
type reminderView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	DueDate   string `json:"dueDate"`
	Priority  string `json:"priority"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
	TimeUntil string `json:"timeUntil"`
	CreatedAt string `json:"createdAt"`
}

func (s *Server) view(r core.Reminder) reminderView {
	return reminderView{
		ID:        r.ID,
		Title:     r.Title,
		Subject:   r.Subject,
		DueDate:   core.FormatDueDate(r.DueDate),
		Priority:  string(r.Priority),
		Notes:     r.Notes,
		Completed: r.Completed,
		TimeUntil: query.TimeUntil(r.DueDate, s.now()).String(),
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) views(rs []core.Reminder) []reminderView {
	out := make([]reminderView, len(rs))
	for i, r := range rs {
		out[i] = s.view(r)
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(output)), nil
}

// toolError reports a domain error as a tool result, not a protocol error.
func toolError(action string, err error) *mcp.CallToolResult {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return mcp.NewToolResultError(verr.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}

func (s *Server) handleAddReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	due, err := core.ParseDueDate(req.GetString("due_date", ""))
	if err != nil {
		return toolError("add reminder", err), nil
	}
	priority, err := core.ParsePriority(req.GetString("priority", ""))
	if err != nil {
		return toolError("add reminder", err), nil
	}

	added, err := s.store.Add(ctx, core.Reminder{
		Title:    req.GetString("title", ""),
		Subject:  req.GetString("subject", ""),
		DueDate:  due,
		Priority: priority,
		Notes:    req.GetString("notes", ""),
	})
	if err != nil {
		return toolError("add reminder", err), nil
	}

	s.logger.Info("reminder added via mcp", "id", added.ID)
	return jsonResult(s.view(added))
}

func (s *Server) handleListReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rs := query.Search(s.store.Snapshot(), req.GetString("search", ""))
	rs = query.Filter(rs, query.Facets{
		Subject:    req.GetString("subject", ""),
		Priority:   core.Priority(req.GetString("priority", "")),
		DatePrefix: req.GetString("date", ""),
	})

	if len(rs) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}
	return jsonResult(s.views(rs))
}

func (s *Server) handleUpcomingReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(req.GetFloat("limit", 5))
	rs := query.Upcoming(s.store.Snapshot(), limit)

	if len(rs) == 0 {
		return mcp.NewToolResultText("No upcoming reminders."), nil
	}
	return jsonResult(s.views(rs))
}

func (s *Server) handleReminderStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(query.ComputeStats(s.store.Snapshot(), s.now()))
}

func (s *Server) handleUpdateReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	r, ok := s.store.Get(id)
	if !ok {
		return toolError("update reminder", &core.NotFoundError{ID: id}), nil
	}

	if v := req.GetString("title", ""); v != "" {
		r.Title = v
	}
	if v := req.GetString("subject", ""); v != "" {
		r.Subject = v
	}
	if v := req.GetString("due_date", ""); v != "" {
		due, err := core.ParseDueDate(v)
		if err != nil {
			return toolError("update reminder", err), nil
		}
		r.DueDate = due
	}
	if v := req.GetString("priority", ""); v != "" {
		p, err := core.ParsePriority(v)
		if err != nil {
			return toolError("update reminder", err), nil
		}
		r.Priority = p
	}
	if v := req.GetString("notes", ""); v != "" {
		r.Notes = v
	}

	if err := s.store.Update(ctx, r); err != nil {
		return toolError("update reminder", err), nil
	}
	updated, _ := s.store.Get(id)
	return jsonResult(s.view(updated))
}

func (s *Server) handleToggleReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if err := s.store.ToggleComplete(ctx, id); err != nil {
		return toolError("toggle reminder", err), nil
	}

	r, _ := s.store.Get(id)
	state := "pending"
	if r.Completed {
		state = "completed"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s marked as %s.", id, state)), nil
}

func (s *Server) handleDeleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return toolError("delete reminder", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s deleted.", id)), nil
}

func (s *Server) handleAskCompanion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg := req.GetString("message", "")
	if msg == "" {
		return mcp.NewToolResultError("message is required"), nil
	}

	reply, err := s.companion.Ask(ctx, msg)
	if err != nil {
		return toolError("ask companion", err), nil
	}
	return mcp.NewToolResultText(reply.Text), nil
}
