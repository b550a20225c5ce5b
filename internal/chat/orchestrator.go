package chat

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"lojachat/internal/model"
	"lojachat/internal/observability"
)

const (
	// historyTurns é quantas mensagens anteriores vão para o modelo.
	historyTurns = 6

	// go-openai omite temperature zero; o menor float32 chega como 0 no provedor.
	defaultTemperature = math.SmallestNonzeroFloat32
	defaultMaxTokens   = 600
)

// Completer is the subset of *openai.Client used here.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator produces the assistant reply for a message list.
type Generator interface {
	Generate(ctx context.Context, messages []model.ChatMessage) (string, error)
}

// LLMConfig configures the model client. The provider speaks the OpenAI
// chat completions protocol (Groq).
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// LLM calls the hosted model.
type LLM struct {
	client Completer
	model  string
	hasKey bool
	logger zerolog.Logger
}

// NewLLM builds an OpenAI-compatible client for cfg.
func NewLLM(cfg LLMConfig, logger zerolog.Logger) *LLM {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return NewLLMWithClient(openai.NewClientWithConfig(clientCfg), cfg.Model, cfg.APIKey != "", logger)
}

// NewLLMWithClient wraps an existing completion client.
func NewLLMWithClient(client Completer, modelName string, hasKey bool, logger zerolog.Logger) *LLM {
	return &LLM{client: client, model: modelName, hasKey: hasKey, logger: logger}
}

// Generate sends messages to the model and returns the first choice. A
// missing key fails before any request is made.
func (l *LLM) Generate(ctx context.Context, messages []model.ChatMessage) (string, error) {
	if !l.hasKey {
		observability.LLMErrorsTotal.WithLabelValues("missing_key").Inc()
		return "", model.ErrMissingAPIKey
	}

	req := openai.ChatCompletionRequest{
		Model:       l.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}
	chars := 0
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
		chars += len(m.Content)
	}

	// Estimativa média: 1 token ~= 4 caracteres
	l.logger.Debug().
		Str("model", l.model).
		Int("messages", len(messages)).
		Int("chars", chars).
		Int("tokens_estimate", chars/4).
		Msg("sending chat completion")

	start := time.Now()
	resp, err := l.client.CreateChatCompletion(ctx, req)
	observability.LLMRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.LLMErrorsTotal.WithLabelValues("upstream").Inc()
		return "", fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// BuildMessages orders the conversation for the model: system prompt, the
// last historyTurns turns, then the new user message. History roles other
// than "user" are sent as "assistant"; empty turns are dropped.
func BuildMessages(systemPrompt string, history []model.ChatMessage, userMessage string) []model.ChatMessage {
	if len(history) > historyTurns {
		history = history[len(history)-historyTurns:]
	}

	messages := make([]model.ChatMessage, 0, len(history)+2)
	messages = append(messages, model.ChatMessage{Role: model.RoleSystem, Content: systemPrompt})
	for _, h := range history {
		if strings.TrimSpace(h.Content) == "" {
			continue
		}
		role := model.RoleAssistant
		if h.Role == model.RoleUser {
			role = model.RoleUser
		}
		messages = append(messages, model.ChatMessage{Role: role, Content: h.Content})
	}
	messages = append(messages, model.ChatMessage{Role: model.RoleUser, Content: userMessage})
	return messages
}
