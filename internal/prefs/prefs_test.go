package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

type store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

func exerciseStore(t *testing.T, s store) {
	t.Helper()

	if _, ok, err := s.Get("showStars"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
	}

	for _, v := range []string{"0", "1", "0"} {
		if err := s.Set("showStars", v); err != nil {
			t.Fatalf("Set(%q) error: %v", v, err)
		}
		got, ok, err := s.Get("showStars")
		if err != nil || !ok {
			t.Fatalf("Get after Set = ok %v, err %v", ok, err)
		}
		if got != v {
			t.Errorf("Get = %q, want %q", got, v)
		}
	}
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())

	var zero Memory
	exerciseStore(t, &zero)
}

func TestSQLiteInMemory(t *testing.T) {
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := s.Set("showStars", "0"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()

	v, ok, err := s.Get("showStars")
	if err != nil || !ok || v != "0" {
		t.Errorf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestSQLiteClosed(t *testing.T) {
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
	if _, _, err := s.Get("showStars"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close = %v, want ErrClosed", err)
	}
	if err := s.Set("showStars", "1"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}
