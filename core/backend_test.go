package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// newTestBackends builds one instance of every concrete backend so the
// conformance tests below run against all of them.
func newTestBackends(t *testing.T) map[string]Backend {
	t.Helper()

	jsonBackend, err := NewJSONFileBackend(t.TempDir())
	if err != nil {
		t.Fatal("NewJSONFileBackend returned unexpected error:", err)
	}

	sqliteBackend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "objects.db"))
	if err != nil {
		t.Fatal("NewSQLiteBackend returned unexpected error:", err)
	}
	t.Cleanup(func() { _ = sqliteBackend.Close() })

	return map[string]Backend{
		"memory":   NewMemoryBackend(),
		"jsonfile": jsonBackend,
		"sqlite":   sqliteBackend,
	}
}

func TestBackendSaveAssignsID(t *testing.T) {
	ctx := context.Background()
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			comment := &Comment{CommentText: "hello"}
			id, err := backend.Save(ctx, comment)
			if err != nil {
				t.Fatal("Save returned unexpected error:", err)
			}
			if id != 1 {
				t.Errorf("first assigned id = %d, want 1", id)
			}
			if comment.ID != id {
				t.Errorf("entity id = %d, want %d written back", comment.ID, id)
			}

			// Next fresh entity gets a distinct id
			annotation := &Annotation{}
			next, err := backend.Save(ctx, annotation)
			if err != nil {
				t.Fatal("Save returned unexpected error:", err)
			}
			if next == id {
				t.Errorf("second assigned id = %d, want a new id", next)
			}
		})
	}
}

func TestBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			comment := &Comment{CommentText: "hello"}
			id, err := backend.Save(ctx, comment)
			if err != nil {
				t.Fatal("Save returned unexpected error:", err)
			}

			loaded, err := LoadAs[*Comment](ctx, backend, id)
			if err != nil {
				t.Fatal("LoadAs returned unexpected error:", err)
			}
			if loaded.ID != id || loaded.CommentText != "hello" {
				t.Errorf("got = %+v, want id=%d, comment_text=hello", loaded, id)
			}

			annotation := &Annotation{}
			aid, err := backend.Save(ctx, annotation)
			if err != nil {
				t.Fatal("Save returned unexpected error:", err)
			}
			loadedAnnotation, err := LoadAs[*Annotation](ctx, backend, aid)
			if err != nil {
				t.Fatal("LoadAs returned unexpected error:", err)
			}
			if loadedAnnotation.ID != aid {
				t.Errorf("annotation id = %d, want %d", loadedAnnotation.ID, aid)
			}
		})
	}
}

func TestBackendOverwriteDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			comment := &Comment{CommentText: "first"}
			id, err := backend.Save(ctx, comment)
			if err != nil {
				t.Fatal("Save returned unexpected error:", err)
			}

			comment.CommentText = "second"
			again, err := backend.Save(ctx, comment)
			if err != nil {
				t.Fatal("re-Save returned unexpected error:", err)
			}
			if again != id {
				t.Errorf("re-save id = %d, want %d", again, id)
			}

			loaded, err := LoadAs[*Comment](ctx, backend, id)
			if err != nil {
				t.Fatal("LoadAs returned unexpected error:", err)
			}
			if loaded.CommentText != "second" {
				t.Errorf("comment_text = %q, want second (last writer wins)", loaded.CommentText)
			}

			// Ids are sequential, so a duplicate would live at id+1
			if _, err := backend.Load(ctx, id+1); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load(%d) = %v, want ErrNotFound", id+1, err)
			}
		})
	}
}

func TestBackendLoadNotFound(t *testing.T) {
	ctx := context.Background()
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := backend.Load(ctx, 999999); !errors.Is(err, ErrNotFound) {
				t.Errorf("got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestBackendTypeMismatch(t *testing.T) {
	ctx := context.Background()
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			comment := &Comment{CommentText: "not an annotation"}
			id, err := backend.Save(ctx, comment)
			if err != nil {
				t.Fatal("Save returned unexpected error:", err)
			}
			if _, err := LoadAs[*Annotation](ctx, backend, id); !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("got %v, want ErrTypeMismatch", err)
			}
		})
	}
}

func TestBackendCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := backend.Save(ctx, &Comment{CommentText: "x"}); err == nil {
				t.Error("Save with cancelled context succeeded, want error")
			}
			if _, err := backend.Load(ctx, 1); err == nil {
				t.Error("Load with cancelled context succeeded, want error")
			}
		})
	}
}

func TestJSONFileBackendReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	backend, err := NewJSONFileBackend(dir)
	if err != nil {
		t.Fatal("NewJSONFileBackend returned unexpected error:", err)
	}
	id, err := backend.Save(ctx, &Comment{CommentText: "durable"})
	if err != nil {
		t.Fatal("Save returned unexpected error:", err)
	}

	// A second backend over the same directory sees the record and
	// continues the id sequence.
	reopened, err := NewJSONFileBackend(dir)
	if err != nil {
		t.Fatal("reopen returned unexpected error:", err)
	}
	loaded, err := LoadAs[*Comment](ctx, reopened, id)
	if err != nil {
		t.Fatal("LoadAs returned unexpected error:", err)
	}
	if loaded.CommentText != "durable" {
		t.Errorf("comment_text = %q, want durable", loaded.CommentText)
	}
	next, err := reopened.Save(ctx, &Annotation{})
	if err != nil {
		t.Fatal("Save returned unexpected error:", err)
	}
	if next != id+1 {
		t.Errorf("id after reload = %d, want %d", next, id+1)
	}
}

func TestSQLiteBackendReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "objects.db")

	backend, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatal("NewSQLiteBackend returned unexpected error:", err)
	}
	id, err := backend.Save(ctx, &Comment{CommentText: "durable"})
	if err != nil {
		t.Fatal("Save returned unexpected error:", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatal("Close returned unexpected error:", err)
	}

	reopened, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatal("reopen returned unexpected error:", err)
	}
	defer reopened.Close()

	loaded, err := LoadAs[*Comment](ctx, reopened, id)
	if err != nil {
		t.Fatal("LoadAs returned unexpected error:", err)
	}
	if loaded.CommentText != "durable" {
		t.Errorf("comment_text = %q, want durable", loaded.CommentText)
	}
}
