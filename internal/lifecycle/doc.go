// Package lifecycle implements the add, complete, undo and remove operations
// over a todo.Store.
//
// Completing a task marks it done in place and arms a one-shot deletion timer.
// The most recently completed task is held in a single undo slot. Undo stops
// that task's timer and re-appends it to the end of the list, still marked
// completed. Completing another task moves the slot to the new task; the
// displaced task's timer keeps running and removes it when it fires.
// Completing the same task again replaces its timer.
//
// Timers come from a clockwork.Clock so tests can drive them with a fake clock.
//
// All mutations are serialized by the controller and written through to the
// store before the call returns. Observers are notified after the controller
// lock is released, so they may call back into the controller.
package lifecycle
