package todo

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Backend is the durable slot a Store writes through to.
// Load returns (nil, nil) when nothing has been saved yet.
type Backend interface {
	Load() ([]byte, error)
	Save(blob []byte) error
}

// Store is the canonical ordered task list.
type Store struct {
	backend Backend
	logger  *log.Logger

	mu    sync.RWMutex
	tasks []Task
}

// NewStore returns an empty store backed by backend. A nil logger discards output.
func NewStore(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{backend: backend, logger: logger}
}

// Load replaces the in-memory list with the persisted snapshot and returns it.
// Missing or unreadable data loads as an empty list.
func (s *Store) Load() []Task {
	tasks := s.readSnapshot()

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	return cloneTasks(tasks)
}

func (s *Store) readSnapshot() []Task {
	blob, err := s.backend.Load()
	if err != nil {
		s.logger.Warn("Reading saved tasks failed, starting empty", "err", err)
		return []Task{}
	}
	if len(blob) == 0 {
		s.logger.Debug("No saved tasks")
		return []Task{}
	}

	tasks, err := DecodeSnapshot(blob)
	if err != nil {
		s.logger.Warn("Saved tasks are corrupt, starting empty", "err", err)
		return []Task{}
	}

	tasks, dropped := Dedupe(tasks)
	if len(dropped) > 0 {
		s.logger.Warn("Dropped tasks with duplicate ids", "ids", dropped)
	}
	s.logger.Debug("Loaded tasks", "count", len(tasks))
	return tasks
}

// Save replaces the in-memory list with tasks and writes the full snapshot.
// Write failures are logged, not returned.
func (s *Store) Save(tasks []Task) {
	next := cloneTasks(tasks)

	s.mu.Lock()
	s.tasks = next
	s.mu.Unlock()

	blob, err := EncodeSnapshot(next)
	if err != nil {
		s.logger.Error("Encoding tasks failed", "err", err)
		return
	}
	if err := s.backend.Save(blob); err != nil {
		s.logger.Error("Saving tasks failed", "err", err, "count", len(next))
	}
}

// All returns a copy of the current ordered list.
func (s *Store) All() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := IndexOf(s.tasks, id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
