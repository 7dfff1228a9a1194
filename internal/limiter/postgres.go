package limiter

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// PG is a PostgreSQL-backed token budget over a sliding window of ai_usage rows.
type PG struct {
	pool      pgxQuerier
	window    time.Duration
	maxTokens int
}

type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPG constructs a limiter that allows at most maxTokens estimated tokens per
// user within window. maxTokens <= 0 disables the budget.
func NewPG(pool pgxQuerier, window time.Duration, maxTokens int) *PG {
	return &PG{pool: pool, window: window, maxTokens: maxTokens}
}

// Allow sums the user's recorded usage inside the window. When the budget is
// spent the retry-after is the time until the oldest counted record ages out.
func (l *PG) Allow(ctx context.Context, userID uuid.UUID) (bool, time.Duration, error) {
	if l.maxTokens <= 0 {
		return true, 0, nil
	}
	const q = `
SELECT COALESCE(SUM(tokens_used), 0), MIN(created_at)
FROM ai_usage
WHERE user_id=$1 AND created_at > now() - $2::interval`
	var used int64
	var oldest *time.Time
	if err := l.pool.QueryRow(ctx, q, userID, l.window).Scan(&used, &oldest); err != nil {
		return false, 0, err
	}
	if used < int64(l.maxTokens) {
		return true, 0, nil
	}

	retry := l.window
	if oldest != nil {
		retry = time.Until(oldest.Add(l.window))
	}
	if retry < 0 {
		retry = 0
	}
	return false, retry, nil
}
