package todo

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nibzard/mywork/internal/storage"
)

func newTestLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestStoreLoadEmpty(t *testing.T) {
	store := NewStore(storage.NewMemoryBackend(), nil)
	tasks := store.Load()
	if len(tasks) != 0 {
		t.Errorf("expected empty list, got %+v", tasks)
	}
	if store.Len() != 0 {
		t.Errorf("Len: got %d, want 0", store.Len())
	}
}

func TestStoreSaveThenLoadRoundTrip(t *testing.T) {
	backend := storage.NewMemoryBackend()
	tasks := []Task{
		{ID: "3", Title: "newest", Context: "work"},
		{ID: "2", Title: "middle", DueDate: "Mon", Completed: true},
		{ID: "1", Title: "oldest", Overdue: true},
	}

	NewStore(backend, nil).Save(tasks)

	// A fresh store over the same backend simulates a restart.
	restarted := NewStore(backend, nil)
	loaded := restarted.Load()
	if len(loaded) != len(tasks) {
		t.Fatalf("count: got %d, want %d", len(loaded), len(tasks))
	}
	for i := range tasks {
		if loaded[i] != tasks[i] {
			t.Errorf("task %d: got %+v, want %+v", i, loaded[i], tasks[i])
		}
	}
}

func TestStoreSaveIsWriteThrough(t *testing.T) {
	backend := storage.NewMemoryBackend()
	store := NewStore(backend, nil)

	store.Save([]Task{{ID: "a", Title: "A"}})
	store.Save([]Task{{ID: "b", Title: "B"}, {ID: "a", Title: "A"}})

	if backend.Saves() != 2 {
		t.Errorf("Saves: got %d, want 2", backend.Saves())
	}
	blob, _ := backend.Load()
	persisted, err := DecodeSnapshot(blob)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	current := store.All()
	if len(persisted) != len(current) {
		t.Fatalf("persisted %d tasks, memory has %d", len(persisted), len(current))
	}
	for i := range current {
		if persisted[i] != current[i] {
			t.Errorf("task %d differs: persisted %+v, memory %+v", i, persisted[i], current[i])
		}
	}
}

func TestStoreLoadCorruptStartsEmpty(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"syntax error", `[{"id":`},
		{"wrong shape", `{"id":"a"}`},
		{"schema violation", `[{"id":"a","title":"A","completed":"nope"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := storage.NewMemoryBackend()
			if err := backend.Save([]byte(tt.blob)); err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			store := NewStore(backend, newTestLogger(&buf))

			if tasks := store.Load(); len(tasks) != 0 {
				t.Errorf("expected empty list, got %+v", tasks)
			}
			if !strings.Contains(buf.String(), "corrupt") {
				t.Errorf("expected a corrupt-data warning, got %q", buf.String())
			}
		})
	}
}

func TestStoreLoadBackendErrorStartsEmpty(t *testing.T) {
	backend := storage.NewMemoryBackend()
	backend.FailLoads(errors.New("permission denied"))

	var buf bytes.Buffer
	store := NewStore(backend, newTestLogger(&buf))
	if tasks := store.Load(); len(tasks) != 0 {
		t.Errorf("expected empty list, got %+v", tasks)
	}
	if !strings.Contains(buf.String(), "permission denied") {
		t.Errorf("expected backend error in log, got %q", buf.String())
	}
}

func TestStoreLoadDropsDuplicateIDs(t *testing.T) {
	backend := storage.NewMemoryBackend()
	blob := `[{"id":"a","title":"first","completed":false},{"id":"a","title":"second","completed":true}]`
	if err := backend.Save([]byte(blob)); err != nil {
		t.Fatal(err)
	}

	store := NewStore(backend, nil)
	tasks := store.Load()
	if len(tasks) != 1 || tasks[0].Title != "first" {
		t.Errorf("expected only the first occurrence, got %+v", tasks)
	}
}

func TestStoreSaveFailureIsSwallowed(t *testing.T) {
	backend := storage.NewMemoryBackend()
	backend.FailSaves(errors.New("disk full"))

	var buf bytes.Buffer
	store := NewStore(backend, newTestLogger(&buf))
	store.Save([]Task{{ID: "a", Title: "A"}})

	if store.Len() != 1 {
		t.Errorf("in-memory state should advance despite the failed write, Len = %d", store.Len())
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("expected write failure in log, got %q", buf.String())
	}

	// The failed write is not retried: a restart sees nothing.
	backend.FailSaves(nil)
	if tasks := NewStore(backend, nil).Load(); len(tasks) != 0 {
		t.Errorf("expected nothing persisted, got %+v", tasks)
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	store := NewStore(storage.NewMemoryBackend(), nil)
	store.Save([]Task{{ID: "a", Title: "A"}})

	tasks := store.All()
	tasks[0].Title = "mutated"

	got, ok := store.Get("a")
	if !ok {
		t.Fatal("Get(a) not found")
	}
	if got.Title != "A" {
		t.Errorf("store was mutated through All(): %q", got.Title)
	}
	if _, ok := store.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestStoreWithFileBackend(t *testing.T) {
	dir := t.TempDir()
	backend, err := storage.NewFileBackend(dir, storage.DefaultKey)
	if err != nil {
		t.Fatal(err)
	}

	NewStore(backend, nil).Save([]Task{{ID: "a", Title: "A", Context: "home"}})
	loaded := NewStore(backend, nil).Load()
	if len(loaded) != 1 || loaded[0].Context != "home" {
		t.Errorf("unexpected tasks after file round trip: %+v", loaded)
	}
}
