package lifecycle

import "github.com/nibzard/mywork/internal/todo"

// EventKind identifies a controller state change.
type EventKind int

const (
	EventAdded EventKind = iota
	EventCompleted
	EventUndone
	EventRemoved
	EventExpired
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventCompleted:
		return "completed"
	case EventUndone:
		return "undone"
	case EventRemoved:
		return "removed"
	case EventExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Event describes one state change. Task is a snapshot taken when the
// change happened.
type Event struct {
	Kind EventKind
	Task todo.Task
	// Displaced is the task that lost its undo opportunity when a newer
	// completion took the slot. Only set for EventCompleted.
	Displaced *todo.Task
}
