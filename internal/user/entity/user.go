package entity

import "time"

// User represents an account row in the `users` table. Email is stored
// lower-cased; the unique index on it makes uniqueness case-insensitive.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Address      string    `db:"address" json:"address"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// View is the public projection returned to callers: never the hash.
type View struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Public() View {
	return View{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}
