package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// TranscriptEntry is one processed command: what was said, through which
// transport, what Hearth replied, and the actions it took.
type TranscriptEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	TraceID   string    `json:"traceId"`
	Source    string    `json:"source"` // "http" or "matrix"
	Actor     string    `json:"actor"`  // remote address or Matrix user ID
	Command   string    `json:"command"`
	Reply     string    `json:"reply"`
	Actions   []string  `json:"actions"`
}

// WriteTranscript appends one transcript row. Actions are stored as JSON.
func (s *Store) WriteTranscript(ctx context.Context, e *TranscriptEntry) error {
	actionsJSON, err := json.Marshal(e.Actions)
	if err != nil {
		return fmt.Errorf("failed to marshal actions: %w", err)
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transcript (ts, trace_id, source, actor, command, reply, actions_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, ts, e.TraceID, e.Source, e.Actor, e.Command, e.Reply, string(actionsJSON))
	if err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}

// GetTranscript retrieves recent entries, newest first.
func (s *Store) GetTranscript(ctx context.Context, limit int) ([]*TranscriptEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, trace_id, source, actor, command, reply, actions_json
		FROM transcript
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var entries []*TranscriptEntry
	for rows.Next() {
		entry := &TranscriptEntry{}
		var actionsJSON sql.NullString
		if err := rows.Scan(
			&entry.ID, &entry.Timestamp, &entry.TraceID, &entry.Source,
			&entry.Actor, &entry.Command, &entry.Reply, &actionsJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transcript entry: %w", err)
		}
		if actionsJSON.Valid && actionsJSON.String != "" {
			if err := json.Unmarshal([]byte(actionsJSON.String), &entry.Actions); err != nil {
				return nil, fmt.Errorf("failed to unmarshal actions for entry %d: %w", entry.ID, err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transcript: %w", err)
	}

	return entries, nil
}

// CommandCount returns the total number of commands processed so far.
func (s *Store) CommandCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transcript").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count transcript: %w", err)
	}
	return n, nil
}
