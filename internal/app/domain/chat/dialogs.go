package chat

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/pkg/cache"
)

// Dialog is one open chat window. Its transcript lives until Close or until it
// has been idle for the store TTL.
type Dialog struct {
	ID        string               `json:"id"`
	Messages  []models.ChatMessage `json:"messages"`
	CreatedAt time.Time            `json:"created_at"`
	busy      bool
}

// Dialogs holds open dialogs and allows one in-flight reply per dialog.
type Dialogs struct {
	store   *cache.TTLCache[Dialog]
	service *Service
}

func NewDialogs(service *Service, ttl time.Duration, logger *zap.Logger) *Dialogs {
	return &Dialogs{
		store:   cache.New[Dialog](ttl, "chat_dialogs", logger),
		service: service,
	}
}

// Open starts a dialog seeded with the greeting.
func (d *Dialogs) Open() Dialog {
	dlg := Dialog{
		ID:        uuid.NewString(),
		Messages:  []models.ChatMessage{{Role: models.RoleAssistant, Content: d.service.Greeting()}},
		CreatedAt: time.Now().UTC(),
	}
	d.store.Set(dlg.ID, dlg)
	return dlg
}

func (d *Dialogs) Get(id string) (Dialog, error) {
	dlg, ok := d.store.Get(id)
	if !ok {
		return Dialog{}, fmt.Errorf("dialog %s: %w", id, models.ErrNotFound)
	}
	return dlg, nil
}

// Send appends the user message, relays the transcript and appends the guide's
// answer. A second Send while one is in flight fails with models.ErrBusy.
func (d *Dialogs) Send(ctx context.Context, id, text string) (Dialog, Reply, error) {
	if strings.TrimSpace(text) == "" {
		return Dialog{}, Reply{}, fmt.Errorf("%w: empty message", models.ErrValidation)
	}

	var transcript []models.ChatMessage
	found, err := d.store.Update(id, func(dlg Dialog) (Dialog, error) {
		if dlg.busy {
			return dlg, fmt.Errorf("dialog %s: %w", id, models.ErrBusy)
		}
		dlg.busy = true
		dlg.Messages = append(slices.Clone(dlg.Messages), models.ChatMessage{Role: models.RoleUser, Content: text})
		transcript = slices.Clone(dlg.Messages)
		return dlg, nil
	})
	if err != nil {
		return Dialog{}, Reply{}, err
	}
	if !found {
		return Dialog{}, Reply{}, fmt.Errorf("dialog %s: %w", id, models.ErrNotFound)
	}

	reply, replyErr := d.service.reply(ctx, id, transcript)

	var out Dialog
	found, _ = d.store.Update(id, func(dlg Dialog) (Dialog, error) {
		dlg.busy = false
		if replyErr == nil {
			dlg.Messages = append(slices.Clone(dlg.Messages), models.ChatMessage{Role: models.RoleAssistant, Content: reply.Text})
		}
		out = dlg
		return dlg, nil
	})
	if replyErr != nil {
		return Dialog{}, Reply{}, replyErr
	}
	if !found {
		return Dialog{}, Reply{}, fmt.Errorf("dialog %s closed during reply: %w", id, models.ErrNotFound)
	}
	return out, reply, nil
}

// Close discards the transcript.
func (d *Dialogs) Close(id string) error {
	if !d.store.Delete(id) {
		return fmt.Errorf("dialog %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// Shutdown stops the expiry sweeper.
func (d *Dialogs) Shutdown() {
	d.store.Close()
}
