package todo

import (
	"errors"
	"strings"
	"testing"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		wantOK bool
	}{
		{"plain title", "Buy milk", true},
		{"title with padding is kept as entered", "  Buy milk  ", true},
		{"empty title", "", false},
		{"whitespace only", " \t\n ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, ok := NewTask(tt.title, "home", "Friday")
			if ok != tt.wantOK {
				t.Fatalf("NewTask(%q) ok = %v, want %v", tt.title, ok, tt.wantOK)
			}
			if !ok {
				if !task.IsZero() {
					t.Errorf("rejected task should be zero, got %+v", task)
				}
				return
			}
			if task.ID == "" {
				t.Error("ID should be set")
			}
			if task.Title != tt.title {
				t.Errorf("Title: got %q, want %q", task.Title, tt.title)
			}
			if task.Context != "home" || task.DueDate != "Friday" {
				t.Errorf("Context/DueDate: got %q/%q", task.Context, task.DueDate)
			}
			if task.Completed || task.Overdue {
				t.Errorf("new task should be active and not overdue: %+v", task)
			}
		})
	}
}

func TestNewIDUniqueInTightLoop(t *testing.T) {
	const n = 10000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d calls", id, i)
		}
		seen[id] = true
	}
}

func TestTaskIsZero(t *testing.T) {
	var empty Task
	if !empty.IsZero() {
		t.Error("zero task should report IsZero")
	}
	task := Task{ID: "a"}
	if task.IsZero() {
		t.Error("task with id should not report IsZero")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	original := []Task{
		{ID: "b", Title: "Second", Context: "work", DueDate: "2026-10-20", Completed: true},
		{ID: "a", Title: "First"},
		{ID: "c", Title: "Late", DueDate: "yesterday", Overdue: true},
	}

	data, err := EncodeSnapshot(original)
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	loaded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if len(loaded) != len(original) {
		t.Fatalf("count: got %d, want %d", len(loaded), len(original))
	}
	for i := range original {
		if loaded[i] != original[i] {
			t.Errorf("task %d: got %+v, want %+v", i, loaded[i], original[i])
		}
	}
}

func TestSnapshotOutputFormat(t *testing.T) {
	data, err := EncodeSnapshot([]Task{{ID: "a", Title: "First", DueDate: "today"}})
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	content := string(data)

	if !strings.HasSuffix(content, "\n") {
		t.Error("snapshot should end with newline")
	}
	if !strings.Contains(content, "\n  {") {
		t.Errorf("snapshot should use 2-space indentation, got:\n%s", content)
	}
	if !strings.Contains(content, `"dueDate": "today"`) {
		t.Errorf("snapshot should use camelCase dueDate key, got:\n%s", content)
	}
	if strings.Contains(content, `"context"`) {
		t.Errorf("empty context should be omitted, got:\n%s", content)
	}
}

func TestEncodeNilSnapshot(t *testing.T) {
	data, err := EncodeSnapshot(nil)
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("got %q, want %q", data, "[]\n")
	}
}

func TestDecodeLegacySnapshot(t *testing.T) {
	// Legacy snapshots: numeric string ids and empty optional fields.
	data := []byte(`[{"id":"1760694000000","title":"Call mom","context":"","dueDate":"","completed":false,"overdue":false}]`)

	tasks, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "1760694000000" || tasks[0].Title != "Call mom" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantErr  bool
		wantPath string
	}{
		{
			name: "valid snapshot",
			data: `[{"id":"a","title":"A","completed":false}]`,
		},
		{
			name: "empty array",
			data: `[]`,
		},
		{
			name: "null optional fields",
			data: `[{"id":"a","title":"A","completed":true,"context":null,"dueDate":null,"overdue":null}]`,
		},
		{
			name:    "not json",
			data:    `{{{`,
			wantErr: true,
		},
		{
			name:    "object instead of array",
			data:    `{"tasks":[]}`,
			wantErr: true,
		},
		{
			name:     "missing id",
			data:     `[{"title":"A","completed":false}]`,
			wantErr:  true,
			wantPath: "[0]",
		},
		{
			name:     "empty id",
			data:     `[{"id":"","title":"A","completed":false}]`,
			wantErr:  true,
			wantPath: "[0].id",
		},
		{
			name:     "completed is a string",
			data:     `[{"id":"a","title":"A","completed":false},{"id":"b","title":"B","completed":"yes"}]`,
			wantErr:  true,
			wantPath: "[1].completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSnapshot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantPath == "" {
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if ve.Path != tt.wantPath {
				t.Errorf("Path: got %q, want %q", ve.Path, tt.wantPath)
			}
		})
	}
}

func TestValidationErrorFormat(t *testing.T) {
	err := &ValidationError{Path: "[0].id", Err: errors.New("length must be >= 1")}
	if got := err.Error(); got != "[0].id: length must be >= 1" {
		t.Errorf("Error(): got %q", got)
	}
	bare := &ValidationError{Err: errors.New("boom")}
	if got := bare.Error(); got != "boom" {
		t.Errorf("Error() without path: got %q", got)
	}
}

func TestDedupe(t *testing.T) {
	tasks := []Task{
		{ID: "a", Title: "first a"},
		{ID: "b", Title: "b"},
		{ID: "a", Title: "second a"},
	}
	out, dropped := Dedupe(tasks)
	if len(out) != 2 || out[0].Title != "first a" || out[1].ID != "b" {
		t.Errorf("Dedupe kept %+v", out)
	}
	if len(dropped) != 1 || dropped[0] != "a" {
		t.Errorf("dropped: got %v, want [a]", dropped)
	}
}

func TestIndexOfAndWithout(t *testing.T) {
	tasks := []Task{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	if got := IndexOf(tasks, "b"); got != 1 {
		t.Errorf("IndexOf(b): got %d, want 1", got)
	}
	if got := IndexOf(tasks, "z"); got != -1 {
		t.Errorf("IndexOf(z): got %d, want -1", got)
	}

	out := Without(tasks, "b")
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "c" {
		t.Errorf("Without(b): got %+v", out)
	}
	if len(tasks) != 3 {
		t.Error("Without must not modify its input")
	}
	if got := Without(tasks, "missing"); len(got) != 3 {
		t.Errorf("Without(missing) should keep everything, got %d", len(got))
	}
}

func TestInstancePath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"/0", "[0]"},
		{"/3/title", "[3].title"},
		{"#/1/dueDate", "[1].dueDate"},
		{"/0/a~1b", "[0].a/b"},
		{"/0/a~0b", "[0].a~b"},
	}
	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := instancePath(tt.ptr); got != tt.want {
				t.Errorf("instancePath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
