package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/and161185/notekeeper/internal/model"
	"github.com/gofrs/uuid/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Ensure(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`INSERT INTO users \(id\) VALUES \(\$1\) ON CONFLICT \(id\) DO NOTHING`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	require.NoError(t, r.Ensure(ctx, id))

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(id).
		WillReturnError(errors.New("db down"))
	require.Error(t, r.Ensure(ctx, id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageRepo_Record(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUsageRepo(db)
	ctx := context.Background()
	ts := time.Now().UTC()

	u := &model.AIUsage{
		ID:         uuid.Must(uuid.NewV4()),
		UserID:     uuid.Must(uuid.NewV4()),
		Feature:    "auto_tag",
		TokensUsed: 3,
	}
	mock.ExpectQuery(`INSERT INTO ai_usage \(id, user_id, feature, tokens_used\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING created_at`).
		WithArgs(u.ID, u.UserID, "auto_tag", 3).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(ts))

	require.NoError(t, r.Record(ctx, u))
	require.Equal(t, ts, u.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
