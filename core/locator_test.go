package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// The locator is a process-wide singleton, so everything that depends on
// its first initialization lives in this one test.
func TestLocatorStability(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("OBJSTORE_BACKEND", "memory")
	t.Setenv("OBJSTORE_DATA_PATH", filepath.Join(tmp, "data"))

	first := GetBackend()
	second := GetBackend()
	if first != second {
		t.Fatal("successive GetBackend calls returned different handles")
	}

	// Writes through one handle are observed by the other
	id, err := first.Save(ctx, &Comment{CommentText: "shared"})
	if err != nil {
		t.Fatal("Save returned unexpected error:", err)
	}
	loaded, err := LoadAs[*Comment](ctx, second, id)
	if err != nil {
		t.Fatal("LoadAs returned unexpected error:", err)
	}
	if loaded.CommentText != "shared" {
		t.Errorf("comment_text = %q, want shared", loaded.CommentText)
	}

	// A configuration swap takes effect on already-held handles
	cfg := GetConfig()
	cfg.Backend = "memory"
	if err := UpdateBackend(cfg); err != nil {
		t.Fatal("UpdateBackend returned unexpected error:", err)
	}
	if _, err := first.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after swap = %v, want ErrNotFound", err)
	}
}

func TestResolveBackendUnknownName(t *testing.T) {
	cfg := defaultConfig()
	cfg.Backend = "carrier-pigeon"
	if _, err := resolveBackend(cfg); err == nil {
		t.Error("expected resolve of unknown backend to fail")
	}
}
