package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Ensure makes sure a users row exists for an identity issued by the auth provider.
func (r *UserRepo) Ensure(ctx context.Context, id uuid.UUID) error {
	const q = `INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`
	_, err := r.db.Pool.Exec(ctx, q, id)
	return err
}
