package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/shoplist/internal/domain"
)

const itemColumns = `id, owner, name, quantity, category, brand, price, added_at`

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

// Create inserts item and returns the stored row. The (owner, name) pair must
// be unused.
func (s *ItemStore) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO items (owner, name, quantity, category, brand, price, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, item.Owner, item.Name, item.Quantity, string(item.Category), item.Brand, roundPrice(item.Price), item.AddedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// GetByName returns nil, nil when owner has no item called name.
func (s *ItemStore) GetByName(ctx context.Context, owner, name string) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE owner = ? AND name = ?`, owner, name)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListByOwner returns owner's items in insertion order.
func (s *ItemStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM items WHERE owner = ? ORDER BY id ASC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	items := []*domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Update writes the mutable fields of item. Owner, name and added_at are
// fixed once the row exists.
func (s *ItemStore) Update(ctx context.Context, item *domain.Item) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE items SET quantity = ?, category = ?, brand = ?, price = ? WHERE id = ?
	`, item.Quantity, string(item.Category), item.Brand, roundPrice(item.Price), item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}

	return nil
}

func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM items WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (*domain.Item, error) {
	item := &domain.Item{}
	var category string
	var price sql.NullFloat64
	if err := sc.Scan(&item.ID, &item.Owner, &item.Name, &item.Quantity, &category, &item.Brand, &price, &item.AddedAt); err != nil {
		return nil, err
	}
	item.Category = domain.Category(category)
	if price.Valid {
		v := price.Float64
		item.Price = &v
	}
	return item, nil
}

// roundPrice keeps prices at two decimal places; nil stays NULL.
func roundPrice(p *float64) any {
	if p == nil {
		return nil
	}
	return domain.RoundPrice(*p)
}
