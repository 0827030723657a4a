package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lifesync/backend/internal/storage/models"
)

// EventRepository provides data access for schedule events. The full stored
// collection, ordered by insertion sequence, is the system of record the
// scheduling core operates on.
type EventRepository struct {
	BaseRepository
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create inserts a new event, assigning a fresh id (unless the caller set
// one) and the next insertion sequence number.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = GenerateID()
	}
	event.CreatedAt = r.Now()
	event.UpdatedAt = r.Now()

	seq, err := r.nextSeq(ctx)
	if err != nil {
		return err
	}
	event.Seq = seq

	days, err := json.Marshal(event.Days)
	if err != nil {
		return fmt.Errorf("encoding days: %w", err)
	}

	_, err = r.DB().ExecContext(ctx, `
		INSERT INTO events (id, title, category, start_time, end_time, days, seq, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		event.ID, event.Title, event.Category, event.Start, event.End,
		string(days), event.Seq, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by its ID. Returns (nil, nil) when no event
// matches.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	row := r.DB().QueryRowContext(ctx, `
		SELECT id, title, category, start_time, end_time, days, seq, created_at, updated_at
		FROM events WHERE id = ?
	`, id)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}

	return event, nil
}

// List retrieves the full event collection in insertion order. This is the
// snapshot the export path serializes.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT id, title, category, start_time, end_time, days, seq, created_at, updated_at
		FROM events
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Update replaces all fields of the matching event except id and seq.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = r.Now()

	days, err := json.Marshal(event.Days)
	if err != nil {
		return fmt.Errorf("encoding days: %w", err)
	}

	result, err := r.DB().ExecContext(ctx, `
		UPDATE events SET
			title = ?, category = ?, start_time = ?, end_time = ?, days = ?, updated_at = ?
		WHERE id = ?
	`,
		event.Title, event.Category, event.Start, event.End,
		string(days), event.UpdatedAt, event.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("event not found: %s", event.ID)
	}

	return nil
}

// Delete removes an event by ID. Deleting a missing id is a no-op, not an
// error: the store is unchanged either way.
func (r *EventRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.DB().ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting event: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// ReplaceAll swaps the entire collection for the incoming one in a single
// transaction (the import path). Missing ids are assigned; sequence numbers
// restart from 1 in input order. No further validation is performed.
func (r *EventRepository) ReplaceAll(ctx context.Context, events []models.Event) error {
	return r.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM events"); err != nil {
			return fmt.Errorf("clearing events: %w", err)
		}

		now := r.Now()
		for i := range events {
			e := &events[i]
			if e.ID == "" {
				e.ID = GenerateID()
			}
			e.Seq = int64(i + 1)
			e.CreatedAt = now
			e.UpdatedAt = now

			days, err := json.Marshal(e.Days)
			if err != nil {
				return fmt.Errorf("encoding days: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				INSERT INTO events (id, title, category, start_time, end_time, days, seq, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				e.ID, e.Title, e.Category, e.Start, e.End,
				string(days), e.Seq, e.CreatedAt, e.UpdatedAt,
			); err != nil {
				return fmt.Errorf("inserting event %s: %w", e.ID, err)
			}
		}

		return nil
	})
}

// Count returns the number of stored events.
func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return n, nil
}

// Seed inserts the built-in default schedule when the store is empty. This
// is the load() fallback: a fresh install starts with a usable week.
func (r *EventRepository) Seed(ctx context.Context) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	return r.ReplaceAll(ctx, models.DefaultEvents())
}

// nextSeq returns the next insertion sequence number. Sequence numbers only
// grow within a collection generation; ReplaceAll restarts them.
func (r *EventRepository) nextSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := r.DB().QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM events").Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("computing next sequence: %w", err)
	}
	return seq, nil
}

// scanner abstracts *sql.Row and *sql.Rows for single-event scans.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*models.Event, error) {
	var event models.Event
	var days string

	if err := s.Scan(
		&event.ID, &event.Title, &event.Category, &event.Start, &event.End,
		&days, &event.Seq, &event.CreatedAt, &event.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(days), &event.Days); err != nil {
		return nil, fmt.Errorf("decoding days for event %s: %w", event.ID, err)
	}

	return &event, nil
}

func scanEvents(rows *sql.Rows) ([]models.Event, error) {
	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}
