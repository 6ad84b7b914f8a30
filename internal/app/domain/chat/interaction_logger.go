package chat

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// InteractionLogger persists interactions off the request path.
type InteractionLogger struct {
	repo   InteractionRepository
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewInteractionLogger(repo InteractionRepository, logger *zap.Logger) *InteractionLogger {
	return &InteractionLogger{repo: repo, logger: logger}
}

// LogAsync saves in a goroutine that outlives the request context.
func (l *InteractionLogger) LogAsync(ctx context.Context, in models.ChatInteraction) {
	asyncCtx := context.WithoutCancel(ctx)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.repo.Save(asyncCtx, in); err != nil {
			l.logger.Error("Failed to log chat interaction asynchronously",
				zap.String("interaction_id", in.ID),
				zap.String("dialog_id", in.DialogID),
				zap.Error(err))
		}
	}()
}

// Wait blocks until pending saves finish.
func (l *InteractionLogger) Wait() {
	l.wg.Wait()
}

func (l *InteractionLogger) Recent(ctx context.Context, limit int) ([]models.ChatInteraction, error) {
	return l.repo.Recent(ctx, limit)
}
