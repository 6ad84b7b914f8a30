package chat

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

func newMockRepo(t *testing.T) (*PostgresInteractionRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresInteractionRepository(mock, zap.NewNop()), mock
}

func TestPostgresInteractionRepository_Save(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2025, 6, 24, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO chat_interactions (id,dialog_id,prompt,response,provider,model,fallback,latency_ms,error_message,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)")).
		WithArgs("i-1", "d-1", "beaches?", "Laiya!", "gemini", "gemini-2.0-flash", false, int64(120), "", created).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Save(context.Background(), models.ChatInteraction{
		ID:        "i-1",
		DialogID:  "d-1",
		Prompt:    "beaches?",
		Response:  "Laiya!",
		Provider:  "gemini",
		Model:     "gemini-2.0-flash",
		LatencyMs: 120,
		CreatedAt: created.UnixMilli(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInteractionRepository_SaveError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO chat_interactions").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection refused"))

	err := repo.Save(context.Background(), models.ChatInteraction{ID: "i-2"})
	assert.ErrorContains(t, err, "failed to save chat interaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInteractionRepository_Recent(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2025, 6, 24, 8, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(interactionColumns).
		AddRow("i-2", "", "weather?", "Sunny", "local", "", true, int64(3), "provider API key not configured", created).
		AddRow("i-1", "d-1", "beaches?", "Laiya!", "gemini", "gemini-2.0-flash", false, int64(120), "", created.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,dialog_id,prompt,response,provider,model,fallback,latency_ms,error_message,created_at FROM chat_interactions ORDER BY created_at DESC LIMIT 5")).
		WillReturnRows(rows)

	items, err := repo.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "i-2", items[0].ID)
	assert.True(t, items[0].Fallback)
	assert.Equal(t, created.UnixMilli(), items[0].CreatedAt)
	assert.Equal(t, "d-1", items[1].DialogID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
