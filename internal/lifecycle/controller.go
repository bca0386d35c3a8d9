package lifecycle

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/nibzard/mywork/internal/logging"
	"github.com/nibzard/mywork/internal/todo"
)

// DefaultUndoDelay is how long a completed task stays undoable.
const DefaultUndoDelay = 7 * time.Second

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used for deletion timers.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithUndoDelay sets the deletion delay. Non-positive values keep the default.
func WithUndoDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers fn to receive every event.
func WithObserver(fn func(Event)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

type pending struct {
	seq  uint64
	task todo.Task
}

// armed is a deletion timer that has not fired or been stopped.
type armed struct {
	timer    clockwork.Timer
	id       string
	deadline time.Time
}

// Controller owns every mutation of the task list.
type Controller struct {
	store     *todo.Store
	clock     clockwork.Clock
	delay     time.Duration
	logger    *log.Logger
	observers []func(Event)

	mu      sync.Mutex
	seq     uint64
	timers  map[uint64]armed
	pending *pending
	closed  bool
}

// New returns a controller over store. The store should already be loaded.
func New(store *todo.Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		clock:  clockwork.NewRealClock(),
		delay:  DefaultUndoDelay,
		logger: logging.Discard(),
		timers: make(map[uint64]armed),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UndoDelay returns the configured deletion delay.
func (c *Controller) UndoDelay() time.Duration {
	return c.delay
}

// Tasks returns the current ordered list.
func (c *Controller) Tasks() []todo.Task {
	return c.store.All()
}

// Pending returns the task currently held in the undo slot.
func (c *Controller) Pending() (todo.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return todo.Task{}, false
	}
	return c.pending.task, true
}

// UndoDeadline returns when the undo slot's timer fires.
func (c *Controller) UndoDeadline() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return time.Time{}, false
	}
	a, ok := c.timers[c.pending.seq]
	return a.deadline, ok
}

// Add prepends a new active task. A blank title is a no-op.
func (c *Controller) Add(title, context, dueDate string) (todo.Task, bool) {
	task, ok := todo.NewTask(title, context, dueDate)
	if !ok {
		c.logger.Debug("Ignoring task with empty title")
		return todo.Task{}, false
	}

	c.mu.Lock()
	tasks := c.store.All()
	next := make([]todo.Task, 0, len(tasks)+1)
	next = append(next, task)
	next = append(next, tasks...)
	c.store.Save(next)
	c.mu.Unlock()

	c.logger.Debug("Added task", "id", task.ID, "title", task.Title)
	c.emit(Event{Kind: EventAdded, Task: task})
	return task, true
}

// Complete marks id done, takes the undo slot and arms its deletion timer.
// An older timer for the same id is stopped so only the newest one can
// remove the task. Unknown ids are a no-op.
func (c *Controller) Complete(id string) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	tasks := c.store.All()
	i := todo.IndexOf(tasks, id)
	if i < 0 {
		c.mu.Unlock()
		c.logger.Debug("Complete ignored, unknown task", "id", id)
		return false
	}
	tasks[i].Completed = true
	task := tasks[i]
	c.store.Save(tasks)

	var displaced *todo.Task
	if c.pending != nil && c.pending.task.ID != id {
		prev := c.pending.task
		displaced = &prev
	}

	for seq, a := range c.timers {
		if a.id == id {
			a.timer.Stop()
			delete(c.timers, seq)
		}
	}

	c.seq++
	seq := c.seq
	c.pending = &pending{seq: seq, task: task}
	deadline := c.clock.Now().Add(c.delay)
	c.timers[seq] = armed{
		timer:    c.clock.AfterFunc(c.delay, func() { c.expire(seq, id) }),
		id:       id,
		deadline: deadline,
	}
	c.mu.Unlock()

	c.logger.Debug("Completed task", "id", id, "delay", c.delay)
	c.emit(Event{Kind: EventCompleted, Task: task, Displaced: displaced})
	return true
}

// expire runs when the timer armed by Complete fires.
func (c *Controller) expire(seq uint64, id string) {
	c.mu.Lock()
	if _, ok := c.timers[seq]; !ok || c.closed {
		// Stopped after the callback was already scheduled.
		c.mu.Unlock()
		return
	}
	delete(c.timers, seq)
	if c.pending != nil && c.pending.seq == seq {
		c.pending = nil
	}

	tasks := c.store.All()
	i := todo.IndexOf(tasks, id)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	task := tasks[i]
	c.store.Save(todo.Without(tasks, id))
	c.mu.Unlock()

	c.logger.Debug("Deletion timer removed task", "id", id)
	c.emit(Event{Kind: EventExpired, Task: task})
}

// RemoveImmediately drops id from the list. Missing ids are a no-op.
// The undo slot and timers are left alone.
func (c *Controller) RemoveImmediately(id string) bool {
	c.mu.Lock()
	tasks := c.store.All()
	i := todo.IndexOf(tasks, id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	task := tasks[i]
	c.store.Save(todo.Without(tasks, id))
	c.mu.Unlock()

	c.logger.Debug("Removed task", "id", id)
	c.emit(Event{Kind: EventRemoved, Task: task})
	return true
}

// Undo restores the task in the undo slot to the end of the list.
// It returns false when the slot is empty.
func (c *Controller) Undo() bool {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return false
	}
	p := c.pending
	c.pending = nil
	if a, ok := c.timers[p.seq]; ok {
		a.timer.Stop()
		delete(c.timers, p.seq)
	}

	next := append(todo.Without(c.store.All(), p.task.ID), p.task)
	c.store.Save(next)
	c.mu.Unlock()

	c.logger.Debug("Undid completion", "id", p.task.ID)
	c.emit(Event{Kind: EventUndone, Task: p.task})
	return true
}

// Close stops every outstanding timer. Completed tasks stay in the list
// with completed set.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for seq, a := range c.timers {
		a.timer.Stop()
		delete(c.timers, seq)
	}
	c.pending = nil
}

func (c *Controller) emit(e Event) {
	for _, fn := range c.observers {
		fn(e)
	}
}
