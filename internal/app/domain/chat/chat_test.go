package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/catalog"
	"github.com/FACorreiaa/juanito/internal/app/models"
)

type fakeLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	release  chan struct{}
	started  chan struct{}
	messages []models.ChatMessage
	system   string
}

func (f *fakeLLM) Provider() string { return "fake" }
func (f *fakeLLM) Model() string    { return "fake-1" }

func (f *fakeLLM) Reply(ctx context.Context, messages []models.ChatMessage, system string) (string, error) {
	f.mu.Lock()
	f.messages = append([]models.ChatMessage(nil), messages...)
	f.system = system
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func chatContent(t *testing.T) catalog.ChatContent {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c.Chat
}

func user(text string) models.ChatMessage {
	return models.ChatMessage{Role: models.RoleUser, Content: text}
}

func guide(text string) models.ChatMessage {
	return models.ChatMessage{Role: models.RoleAssistant, Content: text}
}

func newTestService(t *testing.T, llm LLM) (*Service, *MemoryInteractionRepository, *InteractionLogger) {
	t.Helper()
	repo := NewMemoryInteractionRepository(10)
	il := NewInteractionLogger(repo, zap.NewNop())
	return NewService(llm, chatContent(t), il, time.Second, zap.NewNop()), repo, il
}

func TestResponder_RuleOrder(t *testing.T) {
	r := NewResponder(chatContent(t))

	cases := map[string]string{
		"What are the best beaches to visit?": "beach",
		"Recommend a good restaurant":         "food",
		"Where can I eat near the beach?":     "beach",
		"Tell me about LAIYA":                 "laiya",
		"What activities are available?":      "activity",
		"any things to do at night":           "activity",
		"Is there a festival soon?":           "fiesta",
		"Where should I stay?":                "resort",
		"How to get there from Manila":        "transport",
		"Show me the forecast":                "weather",
		"Show me the weather forecast":        "food",
		"Hello":                               "default",
	}
	for msg, want := range cases {
		_, rule := r.Reply(msg)
		assert.Equal(t, want, rule, msg)
	}

	text, _ := r.Reply("Hello")
	assert.Contains(t, text, "As your guide to San Juan, Batangas")
}

func TestService_NoLLMUsesFallback(t *testing.T) {
	svc, repo, il := newTestService(t, nil)

	reply, err := svc.Reply(context.Background(), []models.ChatMessage{user("best beaches?")})
	require.NoError(t, err)
	assert.True(t, reply.Fallback)
	assert.Equal(t, "beach", reply.Rule)
	assert.Contains(t, reply.Text, "Laiya Beach")

	il.Wait()
	items, err := repo.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Fallback)
	assert.Equal(t, "best beaches?", items[0].Prompt)
	assert.Equal(t, models.ErrMissingAPIKey.Error(), items[0].ErrorMessage)
}

func TestService_RelaysToLLM(t *testing.T) {
	llm := &fakeLLM{reply: "  Mabuhay! Try Laiya.  "}
	svc, repo, il := newTestService(t, llm)

	history := []models.ChatMessage{guide("Hello!"), user("hi"), guide("Hi there"), user("beach?")}
	reply, err := svc.Reply(context.Background(), history)
	require.NoError(t, err)
	assert.False(t, reply.Fallback)
	assert.Equal(t, "Mabuhay! Try Laiya.", reply.Text)
	assert.Equal(t, "fake", reply.Provider)

	assert.Equal(t, history, llm.messages)
	assert.Contains(t, llm.system, "You are Juanito")

	il.Wait()
	items, _ := repo.Recent(context.Background(), 5)
	require.Len(t, items, 1)
	assert.Equal(t, "fake-1", items[0].Model)
	assert.Empty(t, items[0].ErrorMessage)
}

func TestService_FallsBackOnProviderFailure(t *testing.T) {
	for name, llm := range map[string]*fakeLLM{
		"error":      {err: errors.New("503 unavailable")},
		"empty text": {reply: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			svc, _, _ := newTestService(t, llm)
			reply, err := svc.Reply(context.Background(), []models.ChatMessage{user("where to stay?")})
			require.NoError(t, err)
			assert.True(t, reply.Fallback)
			assert.Equal(t, "resort", reply.Rule)
		})
	}
}

func TestService_TimeoutFallsBack(t *testing.T) {
	llm := &fakeLLM{release: make(chan struct{})}
	repo := NewMemoryInteractionRepository(10)
	svc := NewService(llm, chatContent(t), NewInteractionLogger(repo, zap.NewNop()), 20*time.Millisecond, zap.NewNop())

	reply, err := svc.Reply(context.Background(), []models.ChatMessage{user("fiesta dates?")})
	require.NoError(t, err)
	assert.True(t, reply.Fallback)
	assert.Equal(t, "fiesta", reply.Rule)
}

func TestService_Validation(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeLLM{reply: "x"})

	for name, msgs := range map[string][]models.ChatMessage{
		"empty":          nil,
		"ends with bot":  {user("hi"), guide("hello")},
		"blank question": {user("   ")},
	} {
		_, err := svc.Reply(context.Background(), msgs)
		assert.ErrorIs(t, err, models.ErrValidation, name)
	}
}

func TestDialogs_Lifecycle(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeLLM{reply: "Try the lomi."})
	dialogs := NewDialogs(svc, time.Minute, zap.NewNop())
	t.Cleanup(dialogs.Shutdown)

	dlg := dialogs.Open()
	require.Len(t, dlg.Messages, 1)
	assert.Equal(t, models.RoleAssistant, dlg.Messages[0].Role)
	assert.Equal(t, svc.Greeting(), dlg.Messages[0].Content)

	dlg, reply, err := dialogs.Send(context.Background(), dlg.ID, "What should I eat?")
	require.NoError(t, err)
	assert.Equal(t, "Try the lomi.", reply.Text)
	require.Len(t, dlg.Messages, 3)
	assert.Equal(t, user("What should I eat?"), dlg.Messages[1])
	assert.Equal(t, guide("Try the lomi."), dlg.Messages[2])

	got, err := dialogs.Get(dlg.ID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 3)

	require.NoError(t, dialogs.Close(dlg.ID))
	_, err = dialogs.Get(dlg.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, dialogs.Close(dlg.ID), models.ErrNotFound)

	_, _, err = dialogs.Send(context.Background(), dlg.ID, "hello?")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDialogs_OneReplyInFlight(t *testing.T) {
	llm := &fakeLLM{reply: "ok", release: make(chan struct{}), started: make(chan struct{}, 1)}
	svc, _, _ := newTestService(t, llm)
	dialogs := NewDialogs(svc, time.Minute, zap.NewNop())
	t.Cleanup(dialogs.Shutdown)

	dlg := dialogs.Open()

	done := make(chan error, 1)
	go func() {
		_, _, err := dialogs.Send(context.Background(), dlg.ID, "first")
		done <- err
	}()
	<-llm.started

	_, _, err := dialogs.Send(context.Background(), dlg.ID, "second")
	assert.ErrorIs(t, err, models.ErrBusy)

	close(llm.release)
	require.NoError(t, <-done)

	got, err := dialogs.Get(dlg.ID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 3)

	llm.started = nil
	_, _, err = dialogs.Send(context.Background(), dlg.ID, "third")
	assert.NoError(t, err)
}

func TestDialogs_RejectsBlankMessage(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	dialogs := NewDialogs(svc, time.Minute, zap.NewNop())
	t.Cleanup(dialogs.Shutdown)

	_, _, err := dialogs.Send(context.Background(), dialogs.Open().ID, "  ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestMemoryInteractionRepository_KeepsNewest(t *testing.T) {
	repo := NewMemoryInteractionRepository(2)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(ctx, models.ChatInteraction{ID: id}))
	}
	items, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
}
