package repository

import (
	"context"

	"github.com/and161185/notekeeper/internal/model"
)

// UsageRepository appends AI usage records.
type UsageRepository interface {
	// Record inserts a usage record.
	Record(ctx context.Context, u *model.AIUsage) error
}
