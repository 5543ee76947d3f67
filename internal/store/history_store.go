package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/shoplist/internal/domain"
)

// HistoryStore is append-only: events are never updated or deleted.
type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

func (s *HistoryStore) Append(ctx context.Context, ev domain.HistoryEvent) (*domain.HistoryEvent, error) {
	ts := ev.Timestamp.UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO history (owner, item_name, action, timestamp) VALUES (?, ?, ?, ?)
	`, ev.Owner, ev.ItemName, string(ev.Action), ts)
	if err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	ev.ID = id
	ev.Timestamp = ts
	return &ev, nil
}

// ListByOwner returns owner's events oldest first. An empty action returns
// every action.
func (s *HistoryStore) ListByOwner(ctx context.Context, owner string, action domain.Action) ([]domain.HistoryEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, item_name, action, timestamp FROM history
		WHERE owner = ? AND (? = '' OR action = ?)
		ORDER BY timestamp ASC, id ASC
	`, owner, string(action), string(action))
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	events := []domain.HistoryEvent{}
	for rows.Next() {
		var ev domain.HistoryEvent
		var act string
		if err := rows.Scan(&ev.ID, &ev.Owner, &ev.ItemName, &act, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		ev.Action = domain.Action(act)
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return events, nil
}
