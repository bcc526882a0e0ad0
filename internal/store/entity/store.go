package entity

import "time"

// Store represents a row in the `stores` table. Email is optional; OwnerID
// is recorded as supplied and is not checked against the users table.
type Store struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Email     *string   `db:"email" json:"email,omitempty"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
