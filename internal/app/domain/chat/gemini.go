package chat

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", models.ErrMissingAPIKey)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Provider() string { return "gemini" }
func (g *GeminiClient) Model() string    { return g.model }

func (g *GeminiClient) Reply(ctx context.Context, messages []models.ChatMessage, system string) (string, error) {
	ctx, span := otel.Tracer("GeminiClient").Start(ctx, "Reply", trace.WithAttributes(
		attribute.String("model", g.model),
		attribute.Int("messages.count", len(messages)),
	))
	defer span.End()

	prior, prompt, err := splitPrompt(messages)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	chat, err := g.client.Chats.Create(ctx, g.model, generationConfig(system), geminiHistory(prior))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create chat")
		return "", fmt.Errorf("failed to create chat: %w", err)
	}

	result, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	text := result.Text()
	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Reply generated")
	return text, nil
}

func generationConfig(system string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		TopK:            genai.Ptr[float32](topK),
		TopP:            genai.Ptr[float32](topP),
		MaxOutputTokens: maxOutputTokens,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return cfg
}

// geminiHistory maps the user role to "user" and every other role to "model".
func geminiHistory(messages []models.ChatMessage) []*genai.Content {
	trimmed := trimLeadingAssistant(messages)
	history := make([]*genai.Content, 0, len(trimmed))
	for _, m := range trimmed {
		role := genai.Role(genai.RoleModel)
		if m.Role == models.RoleUser {
			role = genai.RoleUser
		}
		history = append(history, genai.NewContentFromText(m.Content, role))
	}
	return history
}
