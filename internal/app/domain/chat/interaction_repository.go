package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// InteractionRepository stores relay calls for later review.
type InteractionRepository interface {
	Save(ctx context.Context, interaction models.ChatInteraction) error
	Recent(ctx context.Context, limit int) ([]models.ChatInteraction, error)
}

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var interactionColumns = []string{
	"id", "dialog_id", "prompt", "response", "provider", "model",
	"fallback", "latency_ms", "error_message", "created_at",
}

type PostgresInteractionRepository struct {
	db     DB
	psql   sq.StatementBuilderType
	logger *zap.Logger
}

func NewPostgresInteractionRepository(db DB, logger *zap.Logger) *PostgresInteractionRepository {
	return &PostgresInteractionRepository{
		db:     db,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger,
	}
}

func (r *PostgresInteractionRepository) Save(ctx context.Context, in models.ChatInteraction) error {
	ctx, span := otel.Tracer("InteractionRepository").Start(ctx, "Save", trace.WithAttributes(
		attribute.String("provider", in.Provider),
		attribute.Bool("fallback", in.Fallback),
	))
	defer span.End()

	query, args, err := r.psql.Insert("chat_interactions").
		Columns(interactionColumns...).
		Values(in.ID, in.DialogID, in.Prompt, in.Response, in.Provider, in.Model,
			in.Fallback, in.LatencyMs, in.ErrorMessage, time.UnixMilli(in.CreatedAt).UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err = r.db.Exec(ctx, query, args...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("failed to save chat interaction: %w", err)
	}

	span.SetStatus(codes.Ok, "Interaction saved")
	return nil
}

func (r *PostgresInteractionRepository) Recent(ctx context.Context, limit int) ([]models.ChatInteraction, error) {
	ctx, span := otel.Tracer("InteractionRepository").Start(ctx, "Recent")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}
	query, args, err := r.psql.Select(interactionColumns...).
		From("chat_interactions").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query chat interactions: %w", err)
	}
	defer rows.Close()

	out := make([]models.ChatInteraction, 0, limit)
	for rows.Next() {
		var (
			in        models.ChatInteraction
			createdAt time.Time
		)
		if err := rows.Scan(&in.ID, &in.DialogID, &in.Prompt, &in.Response, &in.Provider, &in.Model,
			&in.Fallback, &in.LatencyMs, &in.ErrorMessage, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat interaction: %w", err)
		}
		in.CreatedAt = createdAt.UnixMilli()
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat interactions: %w", err)
	}
	return out, nil
}

// MemoryInteractionRepository keeps the most recent interactions in process.
// It is used when no database is configured.
type MemoryInteractionRepository struct {
	mu       sync.Mutex
	items    []models.ChatInteraction
	capacity int
}

func NewMemoryInteractionRepository(capacity int) *MemoryInteractionRepository {
	if capacity <= 0 {
		capacity = 100
	}
	return &MemoryInteractionRepository{capacity: capacity}
}

func (r *MemoryInteractionRepository) Save(_ context.Context, in models.ChatInteraction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, in)
	if len(r.items) > r.capacity {
		r.items = r.items[len(r.items)-r.capacity:]
	}
	return nil
}

// Recent returns newest first.
func (r *MemoryInteractionRepository) Recent(_ context.Context, limit int) ([]models.ChatInteraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.items) {
		limit = len(r.items)
	}
	out := make([]models.ChatInteraction, 0, limit)
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}
