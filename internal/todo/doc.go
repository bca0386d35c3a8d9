// Package todo holds the task model and the write-through task store.
//
// The persisted snapshot is a JSON array of tasks, newest first for tasks
// created through Add:
//
//	[
//	  {
//	    "id": "cs3k1q2v0f8g00a0b0c0",
//	    "title": "Buy milk",
//	    "context": "errands",
//	    "dueDate": "Friday",
//	    "completed": false
//	  }
//	]
//
// # Loading
//
// A snapshot is checked against an embedded JSON Schema (draft 2020-12)
// before it is decoded. Anything that fails (a missing slot, a backend error,
// malformed JSON, a schema violation) loads as an empty list. Duplicate ids
// keep their first occurrence.
//
// # Saving
//
// Store.Save replaces the in-memory list and writes the full snapshot through
// the backend. Write failures are logged and dropped; the next load may not
// reflect the latest state.
//
// # File Format
//
// Snapshots are written with:
//   - 2-space indentation
//   - Trailing newline
//   - camelCase keys (dueDate) so older snapshots keep loading
package todo
