package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ratepoint/service-core/internal/rating/entity"
)

// RatingRepo provides data access for the ratings table using sqlx.
type RatingRepo struct {
	db *sqlx.DB
}

func NewRatingRepo(db *sqlx.DB) *RatingRepo { return &RatingRepo{db: db} }

// EnsureTable creates the ratings table if not exists (idempotent). The
// unique index on (user_id, store_id) is what Upsert's conflict clause
// keys on.
func (r *RatingRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS ratings (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  value INT NOT NULL CHECK (value BETWEEN 1 AND 5),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  UNIQUE (user_id, store_id)
);
CREATE INDEX IF NOT EXISTS idx_ratings_store_id ON ratings(store_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Upsert inserts or overwrites the caller's rating for a store in a single
// statement, so concurrent submissions for the same pair cannot produce
// duplicate rows or lost updates. On conflict the existing row keeps its id
// and created_at; value and updated_at are overwritten.
func (r *RatingRepo) Upsert(ctx context.Context, id, userID, storeID string, value int) (*entity.Rating, error) {
	const q = `INSERT INTO ratings (id, user_id, store_id, value)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, store_id)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		 RETURNING id, user_id, store_id, value, created_at, updated_at`
	var row entity.Rating
	err := r.db.QueryRowxContext(ctx, q, id, userID, storeID, value).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}
	return &row, nil
}

// ListByStore returns all ratings for a store, newest first.
func (r *RatingRepo) ListByStore(ctx context.Context, storeID string) ([]entity.Rating, error) {
	const q = `SELECT id, user_id, store_id, value, created_at, updated_at
	  FROM ratings WHERE store_id=$1 ORDER BY updated_at DESC`
	ratings := []entity.Rating{}
	if err := r.db.SelectContext(ctx, &ratings, q, storeID); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

// Aggregate computes the live average (2 decimal places) and count for a
// store. The average comes back NULL at zero ratings.
func (r *RatingRepo) Aggregate(ctx context.Context, storeID string) (*entity.Aggregate, error) {
	const q = `SELECT ROUND(AVG(value)::numeric, 2) AS average, COUNT(*) AS count
	  FROM ratings WHERE store_id=$1`
	var agg entity.Aggregate
	if err := r.db.GetContext(ctx, &agg, q, storeID); err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	return &agg, nil
}

// ListByOwner returns every rating on every store owned by ownerID.
func (r *RatingRepo) ListByOwner(ctx context.Context, ownerID string) ([]entity.Rating, error) {
	const q = `SELECT rt.id, rt.user_id, rt.store_id, rt.value, rt.created_at, rt.updated_at
	  FROM ratings rt
	  JOIN stores st ON st.id = rt.store_id
	  WHERE st.owner_id=$1
	  ORDER BY rt.updated_at DESC`
	ratings := []entity.Rating{}
	if err := r.db.SelectContext(ctx, &ratings, q, ownerID); err != nil {
		return nil, fmt.Errorf("list owner ratings: %w", err)
	}
	return ratings, nil
}

// AggregatesByOwner returns per-store averages for every store owned by
// ownerID, including stores with zero ratings.
func (r *RatingRepo) AggregatesByOwner(ctx context.Context, ownerID string) ([]entity.StoreAggregate, error) {
	const q = `SELECT st.id AS store_id,
	       ROUND(AVG(rt.value)::numeric, 2) AS average,
	       COUNT(rt.id) AS count
	  FROM stores st
	  LEFT JOIN ratings rt ON rt.store_id = st.id
	  WHERE st.owner_id=$1
	  GROUP BY st.id`
	aggs := []entity.StoreAggregate{}
	if err := r.db.SelectContext(ctx, &aggs, q, ownerID); err != nil {
		return nil, fmt.Errorf("owner aggregates: %w", err)
	}
	return aggs, nil
}
