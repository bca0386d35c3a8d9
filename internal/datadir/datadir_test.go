package datadir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nibzard/mywork/internal/storage"
)

func TestLayoutPaths(t *testing.T) {
	l := New("/data", "")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"snapshot", l.SnapshotPath(), filepath.Join("/data", "TASKS.json")},
		{"database", l.DatabasePath(), filepath.Join("/data", storage.SQLiteFile)},
		{"journal", l.JournalPath(), filepath.Join("/data", "journal")},
		{"config", l.ConfigPath(), filepath.Join("/data", "mywork.toml")},
		{"store file", l.StorePath(storage.KindFile), l.SnapshotPath()},
		{"store sqlite", l.StorePath(storage.KindSQLite), l.DatabasePath()},
		{"store memory", l.StorePath(storage.KindMemory), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestSnapshotPathMatchesFileBackend(t *testing.T) {
	dir := t.TempDir()
	l := New(dir, "WORK")
	backend, err := storage.NewFileBackend(dir, "WORK")
	if err != nil {
		t.Fatal(err)
	}
	if backend.Path() != l.SnapshotPath() {
		t.Errorf("file backend writes %q, layout expects %q", backend.Path(), l.SnapshotPath())
	}
}

func TestEnsure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", Dir)
	l := New(root, "")
	if err := l.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if info, err := os.Stat(l.JournalPath()); err != nil || !info.IsDir() {
		t.Errorf("journal dir missing: %v", err)
	}
	if err := l.Ensure(); err != nil {
		t.Errorf("second Ensure: %v", err)
	}

	if err := New("", "").Ensure(); err == nil {
		t.Error("expected error for empty root")
	}
}
