package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := New(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	// Reopening the same file must not re-apply migrations.
	s2, err := New(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s2.Close()
}

func TestTranscriptRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry := &TranscriptEntry{
		TraceID: "t_abc123",
		Source:  "http",
		Actor:   "127.0.0.1:55555",
		Command: "turn on the living room lights",
		Reply:   "Turned on the living room lights at 70% brightness.",
		Actions: []string{"Turned on living room light (brightness 70%)"},
	}
	if err := s.WriteTranscript(ctx, entry); err != nil {
		t.Fatalf("WriteTranscript() error = %v", err)
	}

	entries, err := s.GetTranscript(ctx, 10)
	if err != nil {
		t.Fatalf("GetTranscript() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}

	got := entries[0]
	if got.TraceID != entry.TraceID || got.Source != entry.Source || got.Actor != entry.Actor {
		t.Errorf("entry = %+v, want fields of %+v", got, entry)
	}
	if got.Command != entry.Command || got.Reply != entry.Reply {
		t.Errorf("command/reply mismatch: %+v", got)
	}
	if len(got.Actions) != 1 || got.Actions[0] != entry.Actions[0] {
		t.Errorf("actions = %v, want %v", got.Actions, entry.Actions)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp was not defaulted")
	}
}

func TestTranscriptNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, cmd := range []string{"first", "second", "third"} {
		if err := s.WriteTranscript(ctx, &TranscriptEntry{
			TraceID: "t_" + cmd,
			Source:  "http",
			Command: cmd,
			Reply:   "ok",
		}); err != nil {
			t.Fatalf("WriteTranscript(%q) error = %v", cmd, err)
		}
	}

	entries, err := s.GetTranscript(ctx, 2)
	if err != nil {
		t.Fatalf("GetTranscript() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want limit 2 applied", len(entries))
	}
	if entries[0].Command != "third" || entries[1].Command != "second" {
		t.Errorf("order = [%q, %q], want newest first", entries[0].Command, entries[1].Command)
	}
}

func TestTranscriptDefaultLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		if err := s.WriteTranscript(ctx, &TranscriptEntry{Source: "http", Command: "x", Reply: "ok"}); err != nil {
			t.Fatalf("WriteTranscript() error = %v", err)
		}
	}

	entries, err := s.GetTranscript(ctx, 0)
	if err != nil {
		t.Fatalf("GetTranscript() error = %v", err)
	}
	if len(entries) != 50 {
		t.Errorf("entries = %d, want the default limit of 50", len(entries))
	}
}

func TestCommandCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.CommandCount(ctx)
	if err != nil {
		t.Fatalf("CommandCount() error = %v", err)
	}
	if n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}

	for i := 0; i < 3; i++ {
		if err := s.WriteTranscript(ctx, &TranscriptEntry{Source: "matrix", Command: "x", Reply: "ok"}); err != nil {
			t.Fatalf("WriteTranscript() error = %v", err)
		}
	}

	n, err = s.CommandCount(ctx)
	if err != nil {
		t.Fatalf("CommandCount() error = %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestTranscriptEmptyActions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.WriteTranscript(ctx, &TranscriptEntry{Source: "http", Command: "status", Reply: "..."}); err != nil {
		t.Fatalf("WriteTranscript() error = %v", err)
	}

	entries, err := s.GetTranscript(ctx, 1)
	if err != nil {
		t.Fatalf("GetTranscript() error = %v", err)
	}
	if len(entries[0].Actions) != 0 {
		t.Errorf("actions = %v, want none", entries[0].Actions)
	}
}
