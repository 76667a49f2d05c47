package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanya2303/Edvora/pkg/adapters/memory"
	"github.com/Tanya2303/Edvora/pkg/core"
	"github.com/Tanya2303/Edvora/pkg/query"
)

var now = time.Date(2025, 1, 8, 9, 0, 0, 0, time.Local)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := core.NewStore(memory.NewHost().Open("mcp"))
	require.NoError(t, store.Initialize(context.Background()))
	return NewServer(store, "test", WithClock(func() time.Time { return now }))
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := handler(context.Background(), mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])
	return tc.Text
}

func addEssay(t *testing.T, s *Server) reminderView {
	t.Helper()
	res := call(t, s.handleAddReminder, map[string]any{
		"title":    "Essay",
		"subject":  "English",
		"due_date": "2025-01-10T09:00",
		"priority": "high",
	})
	require.False(t, res.IsError, text(t, res))

	var v reminderView
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &v))
	return v
}

func TestAddReminder(t *testing.T) {
	s := newTestServer(t)
	v := addEssay(t, s)

	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "2025-01-10T09:00", v.DueDate)
	assert.Equal(t, "high", v.Priority)
	assert.Equal(t, "2 days", v.TimeUntil)
	assert.Equal(t, 1, s.store.Len())

	t.Run("Validation Errors Are Tool Errors", func(t *testing.T) {
		res := call(t, s.handleAddReminder, map[string]any{"title": "x", "subject": "y", "due_date": "soon"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "dueDate")

		res = call(t, s.handleAddReminder, map[string]any{"title": "", "subject": "y", "due_date": "2025-01-10T09:00"})
		assert.True(t, res.IsError)
		assert.Equal(t, 1, s.store.Len())
	})
}

func TestListReminders(t *testing.T) {
	s := newTestServer(t)

	res := call(t, s.handleListReminders, nil)
	assert.Equal(t, "No reminders found.", text(t, res))

	addEssay(t, s)
	call(t, s.handleAddReminder, map[string]any{"title": "Lab report", "subject": "Physics", "due_date": "2025-02-01T10:00"})

	var got []reminderView
	res = call(t, s.handleListReminders, map[string]any{"search": "ESSAY"})
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Essay", got[0].Title)

	res = call(t, s.handleListReminders, map[string]any{"subject": "Physics", "date": "2025-02"})
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Lab report", got[0].Title)
	assert.Equal(t, "medium", got[0].Priority)
}

func TestUpcomingAndStats(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleAddReminder, map[string]any{"title": "Later", "subject": "Math", "due_date": "2025-03-01T10:00"})
	essay := addEssay(t, s)
	call(t, s.handleToggleReminder, map[string]any{"id": essay.ID})

	var got []reminderView
	res := call(t, s.handleUpcomingReminders, map[string]any{"limit": 5})
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Later", got[0].Title)

	var stats query.Stats
	res = call(t, s.handleReminderStats, nil)
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &stats))
	assert.Equal(t, query.Stats{Total: 2, Completed: 1, Pending: 1}, stats)
}

func TestUpdateReminder(t *testing.T) {
	s := newTestServer(t)
	essay := addEssay(t, s)

	res := call(t, s.handleUpdateReminder, map[string]any{"id": essay.ID, "title": "Final essay", "priority": "low"})
	require.False(t, res.IsError, text(t, res))

	var v reminderView
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &v))
	assert.Equal(t, "Final essay", v.Title)
	assert.Equal(t, "low", v.Priority)
	assert.Equal(t, "English", v.Subject, "omitted fields keep their value")
	assert.Equal(t, essay.CreatedAt, v.CreatedAt)

	res = call(t, s.handleUpdateReminder, map[string]any{"id": "missing", "title": "x"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "missing")
}

func TestToggleAndDelete(t *testing.T) {
	s := newTestServer(t)
	essay := addEssay(t, s)

	res := call(t, s.handleToggleReminder, map[string]any{"id": essay.ID})
	assert.Contains(t, text(t, res), "completed")
	res = call(t, s.handleToggleReminder, map[string]any{"id": essay.ID})
	assert.Contains(t, text(t, res), "pending")

	res = call(t, s.handleToggleReminder, map[string]any{"id": "missing"})
	assert.True(t, res.IsError)

	res = call(t, s.handleDeleteReminder, map[string]any{"id": essay.ID})
	assert.False(t, res.IsError)
	assert.Zero(t, s.store.Len())

	res = call(t, s.handleDeleteReminder, map[string]any{})
	assert.True(t, res.IsError)
}

func TestAskCompanion(t *testing.T) {
	s := newTestServer(t)
	addEssay(t, s)

	res := call(t, s.handleAskCompanion, map[string]any{"message": "What are my deadlines?"})
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "Essay")

	res = call(t, s.handleAskCompanion, map[string]any{"message": ""})
	assert.True(t, res.IsError)
}

func TestToolsAreRegistered(t *testing.T) {
	s := newTestServer(t)
	tools := s.MCPServer().ListTools()
	for _, name := range []string{
		"add_reminder", "list_reminders", "upcoming_reminders", "reminder_stats",
		"update_reminder", "toggle_reminder", "delete_reminder", "ask_companion",
	} {
		assert.Contains(t, tools, name)
	}
}
