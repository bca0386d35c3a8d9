// Package todo holds the task model and the write-through task store.
package todo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/xid"
)

// Task is a single to-do entry.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Context   string `json:"context,omitempty" yaml:"context,omitempty"`
	DueDate   string `json:"dueDate,omitempty" yaml:"due_date,omitempty"`
	Completed bool   `json:"completed" yaml:"completed"`
	// Overdue is stored as given. Nothing derives it from DueDate.
	Overdue bool `json:"overdue,omitempty" yaml:"overdue,omitempty"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// NewID returns a fresh task id. Ids are time-prefixed and unique within
// the process even when generated within the same clock tick.
func NewID() string {
	return xid.New().String()
}

// NewTask builds an active task. It returns false when title is blank.
func NewTask(title, context, dueDate string) (Task, bool) {
	if strings.TrimSpace(title) == "" {
		return Task{}, false
	}
	return Task{
		ID:      NewID(),
		Title:   title,
		Context: context,
		DueDate: dueDate,
	}, true
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dot path to the error location, e.g. "[2].title"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// EncodeSnapshot serializes tasks with 2-space indentation and a trailing newline.
// A nil slice encodes as an empty array.
func EncodeSnapshot(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeSnapshot validates and parses a snapshot blob.
func DecodeSnapshot(data []byte) ([]Task, error) {
	if err := ValidateSnapshot(data); err != nil {
		return nil, err
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return tasks, nil
}

// Dedupe drops tasks whose id already appeared earlier in the list.
// It returns the filtered list and the ids that were dropped.
func Dedupe(tasks []Task) ([]Task, []string) {
	seen := make(map[string]bool, len(tasks))
	out := make([]Task, 0, len(tasks))
	var dropped []string
	for _, t := range tasks {
		if seen[t.ID] {
			dropped = append(dropped, t.ID)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, dropped
}

// IndexOf returns the position of id in tasks, or -1.
func IndexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Without returns a copy of tasks with every entry for id removed.
func Without(tasks []Task, id string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
