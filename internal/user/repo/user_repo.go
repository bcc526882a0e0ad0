package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ratepoint/service-core/internal/apperr"
	"github.com/ratepoint/service-core/internal/user/entity"
	"github.com/ratepoint/service-core/pkg/utilities"
)

// pqUniqueViolation is the Postgres error code for a unique-constraint
// violation; duplicate-email detection rides on it rather than a pre-check
// so there is no check-then-insert race.
const pqUniqueViolation = "23505"

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the users table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'normal',
  address TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new user row. A unique violation on email surfaces as
// DuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const q = `INSERT INTO users (id, name, email, password_hash, role, address)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`
	err := r.db.QueryRowxContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Address).
		Scan(&u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return apperr.DuplicateEmail()
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail returns a user matched by (already lower-cased) email or
// sql.ErrNoRows.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT id, name, email, password_hash, role, address, created_at
	  FROM users WHERE email=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, email); err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByID fetches a full user row.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	const q = `SELECT id, name, email, password_hash, role, address, created_at
	  FROM users WHERE id=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdatePassword overwrites the stored hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	const q = `UPDATE users SET password_hash=$2 WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.Validation("user not found")
	}
	return nil
}

// Filter narrows a user listing. String fields are case-insensitive
// substring matches, Role is exact; absent fields impose no constraint.
type Filter struct {
	Name    string
	Email   string
	Address string
	Role    string
}

var userSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"address":    "address",
	"role":       "role",
	"createdAt":  "created_at",
	"created_at": "created_at",
}

// List returns users matching f, ordered by an allow-listed column.
func (r *UserRepo) List(ctx context.Context, f Filter, sortBy, order string) ([]entity.User, error) {
	q := `SELECT id, name, email, password_hash, role, address, created_at FROM users`
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Name != "" {
		add("name ILIKE $%d", "%"+f.Name+"%")
	}
	if f.Email != "" {
		add("email ILIKE $%d", "%"+f.Email+"%")
	}
	if f.Address != "" {
		add("address ILIKE $%d", "%"+f.Address+"%")
	}
	if f.Role != "" {
		add("role = $%d", f.Role)
	}
	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += " ORDER BY " + utilities.SafeOrderClause(userSortColumns, sortBy, order, "id")

	users := []entity.User{}
	if err := r.db.SelectContext(ctx, &users, q, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
