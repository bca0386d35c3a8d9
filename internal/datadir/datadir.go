// Package datadir provides constants and utilities for the data directory layout.
package datadir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/mywork/internal/storage"
)

const (
	// Dir is the name of the default data directory under the user's home.
	Dir = ".mywork"

	// JournalDir holds one JSONL activity journal per session.
	JournalDir = "journal"

	// ConfigFile is the user config file name (inside Dir).
	ConfigFile = "mywork.toml"
)

// Layout resolves the files kept under one data directory.
type Layout struct {
	Root string
	Key  string
}

// New returns the layout rooted at root for the slot key.
// An empty key uses storage.DefaultKey.
func New(root, key string) Layout {
	if key == "" {
		key = storage.DefaultKey
	}
	return Layout{Root: root, Key: key}
}

// SnapshotPath returns the JSON snapshot used by the file backend.
func (l Layout) SnapshotPath() string {
	return filepath.Join(l.Root, l.Key+storage.FileExt)
}

// DatabasePath returns the SQLite database used by the sqlite backend.
func (l Layout) DatabasePath() string {
	return storage.SQLitePath(l.Root)
}

// JournalPath returns the activity journal directory.
func (l Layout) JournalPath() string {
	return filepath.Join(l.Root, JournalDir)
}

// ConfigPath returns the config file kept in the data directory.
func (l Layout) ConfigPath() string {
	return filepath.Join(l.Root, ConfigFile)
}

// StorePath returns the file a backend of the given kind writes to,
// or "" for backends that keep nothing on disk.
func (l Layout) StorePath(kind storage.Kind) string {
	switch kind {
	case storage.KindFile:
		return l.SnapshotPath()
	case storage.KindSQLite:
		return l.DatabasePath()
	default:
		return ""
	}
}

// Ensure creates the data and journal directories.
func (l Layout) Ensure() error {
	if l.Root == "" {
		return fmt.Errorf("data dir is empty")
	}
	if err := os.MkdirAll(l.JournalPath(), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
