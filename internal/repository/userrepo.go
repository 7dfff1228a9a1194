package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// UserRepository provisions owner rows for authenticated identities.
type UserRepository interface {
	// Ensure inserts the user if it does not exist yet.
	Ensure(ctx context.Context, id uuid.UUID) error
}
