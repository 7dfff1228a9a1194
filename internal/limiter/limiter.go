// Package limiter defines per-user AI usage budgets.
package limiter

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Limiter decides whether a user may spend more AI tokens.
type Limiter interface {
	// Allow reports whether another assist call is allowed and, if not, when to retry.
	Allow(ctx context.Context, userID uuid.UUID) (bool, time.Duration, error)
}
