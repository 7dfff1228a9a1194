package postgres

import (
	"context"

	"github.com/and161185/notekeeper/internal/model"
)

// UsageRepo implements UsageRepository using PostgreSQL.
type UsageRepo struct{ db *DB }

// NewUsageRepo constructs a usage repository.
func NewUsageRepo(db *DB) *UsageRepo { return &UsageRepo{db: db} }

// Record appends a usage row.
func (r *UsageRepo) Record(ctx context.Context, u *model.AIUsage) error {
	const q = `
INSERT INTO ai_usage (id, user_id, feature, tokens_used)
VALUES ($1, $2, $3, $4)
RETURNING created_at`
	return r.db.Pool.QueryRow(ctx, q, u.ID, u.UserID, u.Feature, u.TokensUsed).Scan(&u.CreatedAt)
}
