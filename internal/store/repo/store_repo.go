package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ratepoint/service-core/internal/store/entity"
	"github.com/ratepoint/service-core/pkg/utilities"
)

// StoreRepo provides data access for the stores table using sqlx.
type StoreRepo struct {
	db *sqlx.DB
}

func NewStoreRepo(db *sqlx.DB) *StoreRepo { return &StoreRepo{db: db} }

// EnsureTable creates the stores table if not exists (idempotent).
func (r *StoreRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT NOT NULL,
  email TEXT,
  owner_id TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_stores_owner_id ON stores(owner_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new store row.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	const q = `INSERT INTO stores (id, name, address, email, owner_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`
	err := r.db.QueryRowxContext(ctx, q, s.ID, s.Name, s.Address, s.Email, s.OwnerID).
		Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID fetches a store row.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	const q = `SELECT id, name, address, email, owner_id, created_at FROM stores WHERE id=$1`
	var row entity.Store
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Filter narrows a store listing. Name and Address are case-insensitive
// substring matches, OwnerID is exact.
type Filter struct {
	Name    string
	Address string
	OwnerID string
}

var storeSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"address":    "address",
	"ownerId":    "owner_id",
	"owner_id":   "owner_id",
	"createdAt":  "created_at",
	"created_at": "created_at",
}

// List returns stores matching f, ordered by an allow-listed column.
func (r *StoreRepo) List(ctx context.Context, f Filter, sortBy, order string) ([]entity.Store, error) {
	q := `SELECT id, name, address, email, owner_id, created_at FROM stores`
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Name != "" {
		add("name ILIKE $%d", "%"+f.Name+"%")
	}
	if f.Address != "" {
		add("address ILIKE $%d", "%"+f.Address+"%")
	}
	if f.OwnerID != "" {
		add("owner_id = $%d", f.OwnerID)
	}
	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += " ORDER BY " + utilities.SafeOrderClause(storeSortColumns, sortBy, order, "id")

	stores := []entity.Store{}
	if err := r.db.SelectContext(ctx, &stores, q, args...); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}
