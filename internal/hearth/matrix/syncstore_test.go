package matrix

import (
	"context"
	"path/filepath"
	"testing"

	"maunium.net/go/mautrix/id"

	"github.com/hearth-home/hearth/internal/hearth/store"
)

func newTestSyncStore(t *testing.T) *DBSyncStore {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return newDBSyncStore(s.DB())
}

func TestSyncStoreNextBatch(t *testing.T) {
	ss := newTestSyncStore(t)
	ctx := context.Background()
	userID := id.UserID("@hearth:example.org")

	// First run: no token yet.
	token, err := ss.LoadNextBatch(ctx, userID)
	if err != nil {
		t.Fatalf("LoadNextBatch() error = %v", err)
	}
	if token != "" {
		t.Fatalf("token = %q, want empty on first run", token)
	}

	if err := ss.SaveNextBatch(ctx, userID, "s123_456"); err != nil {
		t.Fatalf("SaveNextBatch() error = %v", err)
	}
	token, err = ss.LoadNextBatch(ctx, userID)
	if err != nil {
		t.Fatalf("LoadNextBatch() error = %v", err)
	}
	if token != "s123_456" {
		t.Errorf("token = %q, want %q", token, "s123_456")
	}

	// Saving again overwrites instead of failing on the primary key.
	if err := ss.SaveNextBatch(ctx, userID, "s789_012"); err != nil {
		t.Fatalf("SaveNextBatch() overwrite error = %v", err)
	}
	token, _ = ss.LoadNextBatch(ctx, userID)
	if token != "s789_012" {
		t.Errorf("token = %q, want overwritten %q", token, "s789_012")
	}
}

func TestSyncStoreFilterID(t *testing.T) {
	ss := newTestSyncStore(t)
	ctx := context.Background()
	userID := id.UserID("@hearth:example.org")

	if err := ss.SaveFilterID(ctx, userID, "filter-1"); err != nil {
		t.Fatalf("SaveFilterID() error = %v", err)
	}
	got, err := ss.LoadFilterID(ctx, userID)
	if err != nil {
		t.Fatalf("LoadFilterID() error = %v", err)
	}
	if got != "filter-1" {
		t.Errorf("filter ID = %q, want %q", got, "filter-1")
	}
}

func TestSyncStoreKeysAreScopedPerUser(t *testing.T) {
	ss := newTestSyncStore(t)
	ctx := context.Background()

	if err := ss.SaveNextBatch(ctx, id.UserID("@a:example.org"), "token-a"); err != nil {
		t.Fatalf("SaveNextBatch() error = %v", err)
	}
	token, err := ss.LoadNextBatch(ctx, id.UserID("@b:example.org"))
	if err != nil {
		t.Fatalf("LoadNextBatch() error = %v", err)
	}
	if token != "" {
		t.Errorf("token leaked across users: %q", token)
	}
}
