// Package storage provides key/value slots that hold the serialized task list.
//
// Every backend stores exactly one opaque blob under a fixed key. Load returns
// (nil, nil) when nothing has been saved yet, and Save replaces the blob
// wholesale. There is no versioning and no partial update.
package storage

import (
	"fmt"
	"strings"
)

// DefaultKey is the slot name the task list is stored under.
const DefaultKey = "TASKS"

// Kind names a backend implementation.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// Backend is a single key/value slot.
type Backend interface {
	Load() ([]byte, error)
	Save(blob []byte) error
	Close() error
}

// ParseKind normalizes a backend name. Aliases "json" and "sqlite3" are accepted.
func ParseKind(input string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "file", "json":
		return KindFile, nil
	case "sqlite", "sqlite3":
		return KindSQLite, nil
	case "memory", "mem":
		return KindMemory, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", input)
	}
}

// Open creates the backend of the given kind rooted at dir.
// The key names the slot; an empty key uses DefaultKey.
func Open(kind Kind, dir, key string) (Backend, error) {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	switch kind {
	case KindFile, "":
		return NewFileBackend(dir, key)
	case KindSQLite:
		return NewSQLiteBackend(SQLitePath(dir), key)
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
