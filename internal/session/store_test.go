package session

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := tempStore(t)

	want := Session{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-def",
		Role:         RoleMember,
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestFileStoreClear(t *testing.T) {
	store := tempStore(t)

	if err := store.Save(Session{AccessToken: "tok", RefreshToken: "ref", Role: RoleLibrarian}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected empty session after clear, got %+v", got)
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := tempStore(t)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected empty session, got %+v", got)
	}
	if store.IsAuthenticated() {
		t.Fatal("expected not authenticated")
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not json{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewFileStore(path)
	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("corrupt file should read as empty session, got %+v", got)
	}
}

func TestRoleRequiresToken(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Save(Session{Role: RoleLibrarian, RefreshToken: "ref"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _ := store.Load()
	if got.Role != "" {
		t.Fatalf("role must not survive without an access token, got %q", got.Role)
	}
	if got.RefreshToken != "ref" {
		t.Fatalf("refresh token lost: %+v", got)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	want := Session{AccessToken: "a", RefreshToken: "r", Role: RoleMember}
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Fatal("expected authenticated")
	}

	got, _ := store.Load()
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	store.Clear()
	if store.IsAuthenticated() {
		t.Fatal("expected not authenticated after clear")
	}
}
