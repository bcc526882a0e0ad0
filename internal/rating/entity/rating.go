package entity

import "time"

// Rating is a single user's 1-5 star rating of a store. At most one row
// exists per (UserID, StoreID); resubmission overwrites Value and advances
// UpdatedAt, leaving CreatedAt untouched.
type Rating struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	StoreID   string    `db:"store_id" json:"store_id"`
	Value     int       `db:"value" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Aggregate is the live average and count for one store. Average is nil
// when the store has no ratings.
type Aggregate struct {
	Average *float64 `db:"average" json:"avg_rating"`
	Count   int64    `db:"count" json:"total_ratings"`
}

// StoreAggregate pairs a store with its aggregate for owner dashboards.
type StoreAggregate struct {
	StoreID string   `db:"store_id" json:"store_id"`
	Average *float64 `db:"average" json:"avg_rating"`
	Count   int64    `db:"count" json:"total_ratings"`
}
