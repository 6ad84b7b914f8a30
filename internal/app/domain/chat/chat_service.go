package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/catalog"
	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/app/observability/metrics"
)

// Reply is the guide's answer to one user message.
type Reply struct {
	Text      string `json:"response"`
	Fallback  bool   `json:"fallback"`
	Rule      string `json:"rule,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

type Service struct {
	llm          LLM
	responder    *Responder
	content      catalog.ChatContent
	interactions *InteractionLogger
	timeout      time.Duration
	logger       *zap.Logger
}

// NewService wires the relay. llm may be nil, in which case every reply comes
// from the responder.
func NewService(llm LLM, content catalog.ChatContent, interactions *InteractionLogger, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		llm:          llm,
		responder:    NewResponder(content),
		content:      content,
		interactions: interactions,
		timeout:      timeout,
		logger:       logger,
	}
}

func (s *Service) Greeting() string {
	return s.content.Greeting
}

func (s *Service) Suggestions() []string {
	return s.content.Suggestions
}

// Reply answers the last message of the conversation, which must be a
// non-empty user message. Provider failures are never returned: the keyword
// responder answers instead and Reply.Fallback is set.
func (s *Service) Reply(ctx context.Context, messages []models.ChatMessage) (Reply, error) {
	return s.reply(ctx, "", messages)
}

func (s *Service) reply(ctx context.Context, dialogID string, messages []models.ChatMessage) (Reply, error) {
	_, prompt, err := splitPrompt(messages)
	if err != nil {
		return Reply{}, err
	}

	start := time.Now()
	var (
		out    Reply
		errMsg string
	)

	if s.llm == nil {
		errMsg = models.ErrMissingAPIKey.Error()
		out = s.fallback(prompt)
	} else {
		out, errMsg = s.relay(ctx, messages, prompt)
	}
	out.LatencyMs = time.Since(start).Milliseconds()

	source := "llm"
	if out.Fallback {
		source = "fallback"
	}
	metrics.Get().ChatRepliesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))

	if s.interactions != nil {
		s.interactions.LogAsync(ctx, models.ChatInteraction{
			ID:           uuid.NewString(),
			DialogID:     dialogID,
			Prompt:       prompt,
			Response:     out.Text,
			Provider:     out.Provider,
			Model:        out.Model,
			Fallback:     out.Fallback,
			LatencyMs:    out.LatencyMs,
			ErrorMessage: errMsg,
			CreatedAt:    time.Now().UnixMilli(),
		})
	}
	return out, nil
}

func (s *Service) relay(ctx context.Context, messages []models.ChatMessage, prompt string) (Reply, string) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.llm.Reply(ctx, messages, s.content.Persona)
	elapsed := time.Since(start).Seconds()

	if err == nil && strings.TrimSpace(text) == "" {
		err = models.ErrUpstream
	}
	if err != nil {
		metrics.Get().Upstream(ctx, s.llm.Provider(), "error", elapsed)
		s.logger.Warn("LLM relay failed, answering from fallback responder",
			zap.String("provider", s.llm.Provider()),
			zap.String("model", s.llm.Model()),
			zap.Error(err))
		return s.fallback(prompt), err.Error()
	}

	metrics.Get().Upstream(ctx, s.llm.Provider(), "ok", elapsed)
	return Reply{
		Text:     strings.TrimSpace(text),
		Provider: s.llm.Provider(),
		Model:    s.llm.Model(),
	}, ""
}

func (s *Service) fallback(prompt string) Reply {
	text, rule := s.responder.Reply(prompt)
	return Reply{Text: text, Fallback: true, Rule: rule, Provider: "local"}
}

// Recent lists logged interactions, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.ChatInteraction, error) {
	if s.interactions == nil {
		return []models.ChatInteraction{}, nil
	}
	return s.interactions.Recent(ctx, limit)
}
