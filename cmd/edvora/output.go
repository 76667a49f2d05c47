package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Tanya2303/Edvora/pkg/core"
	"github.com/Tanya2303/Edvora/pkg/query"
)

// record is the exported shape of a reminder for --json and --yaml.
type record struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Subject   string `json:"subject" yaml:"subject"`
	DueDate   string `json:"dueDate" yaml:"dueDate"`
	Priority  string `json:"priority" yaml:"priority"`
	Notes     string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Completed bool   `json:"completed" yaml:"completed"`
	TimeUntil string `json:"timeUntil" yaml:"timeUntil"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

func toRecords(rs []core.Reminder, now time.Time) []record {
	out := make([]record, len(rs))
	for i, r := range rs {
		out[i] = record{
			ID:        r.ID,
			Title:     r.Title,
			Subject:   r.Subject,
			DueDate:   core.FormatDueDate(r.DueDate),
			Priority:  string(r.Priority),
			Notes:     r.Notes,
			Completed: r.Completed,
			TimeUntil: query.TimeUntil(r.DueDate, now).String(),
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

// emit writes v as JSON or YAML when requested and reports whether it did.
func emit(w io.Writer, asJSON, asYAML bool, v any) (bool, error) {
	switch {
	case asJSON:
		return true, writeJSON(w, v)
	case asYAML:
		return true, writeYAML(w, v)
	}
	return false, nil
}
