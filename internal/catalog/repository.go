package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested catalog item does not exist.
var ErrNotFound = errors.New("catalog item not found")

// Repository provides read access to the catalog_items table.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository over an established connection pool.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const listQuery = `
SELECT id, name, category, COALESCE(specification, ''), unit, unit_price
FROM catalog_items
ORDER BY id`

// List loads the full catalog. Catalogs are small (thousands of rows at
// most), so matching happens in memory against the loaded slice.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Specification, &it.Unit, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog items: %w", err)
	}

	return items, nil
}

const findQuery = `
SELECT id, name, category, COALESCE(specification, ''), unit, unit_price
FROM catalog_items
WHERE id = $1`

// Find returns one catalog item by ID.
func (r *Repository) Find(ctx context.Context, id string) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx, findQuery, id).
		Scan(&it.ID, &it.Name, &it.Category, &it.Specification, &it.Unit, &it.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find catalog item: %w", err)
	}
	return &it, nil
}
