package client

import (
	"path/filepath"
	"testing"
)

func TestFileStore_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	// Missing file loads as an empty session.
	sess, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sess.Token != "" {
		t.Fatalf("expected empty session, got %+v", sess)
	}

	saved := Session{
		Token: "token123",
		User:  &User{ID: "user_1", Email: "ada@example.com", Role: RoleClient},
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Token != "token123" || loaded.User == nil || loaded.User.Email != "ada@example.com" {
		t.Fatalf("unexpected session: %+v", loaded)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	cleared, err := store.Load()
	if err != nil {
		t.Fatalf("load after clear failed: %v", err)
	}
	if cleared.Token != "" || cleared.User != nil {
		t.Fatalf("expected empty session after clear, got %+v", cleared)
	}

	// Clearing an already-missing file is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("double clear failed: %v", err)
	}
}

func TestMemoryStore_Roundtrip(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Save(Session{Token: "t", PendingUser: &User{ID: "user_2"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	sess, _ := store.Load()
	if sess.Token != "t" || sess.PendingUser == nil {
		t.Fatalf("unexpected session: %+v", sess)
	}

	_ = store.Clear()
	sess, _ = store.Load()
	if sess.Token != "" || sess.PendingUser != nil {
		t.Fatalf("expected empty session, got %+v", sess)
	}
}
