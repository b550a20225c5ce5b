package chat

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lojachat/internal/model"
)

type fakeCompleter struct {
	resp openai.ChatCompletionResponse
	err  error
	req  openai.ChatCompletionRequest
	hits int
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.hits++
	f.req = req
	return f.resp, f.err
}

func completion(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: "assistant", Content: text}},
		},
	}
}

func TestLLMGenerate(t *testing.T) {
	client := &fakeCompleter{resp: completion("Olá! Como posso ajudar?")}
	llm := NewLLMWithClient(client, "llama3-70b-8192", true, zerolog.Nop())

	got, err := llm.Generate(context.Background(), []model.ChatMessage{
		{Role: model.RoleSystem, Content: "regras"},
		{Role: model.RoleUser, Content: "oi"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Olá! Como posso ajudar?", got)
	assert.Equal(t, "llama3-70b-8192", client.req.Model)
	assert.Equal(t, defaultMaxTokens, client.req.MaxTokens)
	assert.Equal(t, float32(math.SmallestNonzeroFloat32), client.req.Temperature)
	require.Len(t, client.req.Messages, 2)
	assert.Equal(t, "system", client.req.Messages[0].Role)
	assert.Equal(t, "oi", client.req.Messages[1].Content)
}

func TestLLMGenerateErrors(t *testing.T) {
	t.Run("missing key fails before calling the provider", func(t *testing.T) {
		client := &fakeCompleter{}
		llm := NewLLMWithClient(client, "m", false, zerolog.Nop())

		_, err := llm.Generate(context.Background(), nil)

		assert.ErrorIs(t, err, model.ErrMissingAPIKey)
		assert.Zero(t, client.hits)
	})

	t.Run("provider error is wrapped as upstream", func(t *testing.T) {
		llm := NewLLMWithClient(&fakeCompleter{err: errors.New("401 invalid api key")}, "m", true, zerolog.Nop())

		_, err := llm.Generate(context.Background(), nil)

		assert.ErrorIs(t, err, model.ErrUpstream)
		assert.Contains(t, err.Error(), "401 invalid api key")
	})

	t.Run("no choices yields empty text", func(t *testing.T) {
		llm := NewLLMWithClient(&fakeCompleter{}, "m", true, zerolog.Nop())

		got, err := llm.Generate(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestNewLLMUsesConfiguredKey(t *testing.T) {
	llm := NewLLM(LLMConfig{Model: "m", BaseURL: "https://api.groq.com/openai/v1"}, zerolog.Nop())

	_, err := llm.Generate(context.Background(), nil)
	assert.ErrorIs(t, err, model.ErrMissingAPIKey)
}

func TestBuildMessages(t *testing.T) {
	t.Run("orders system, history, user", func(t *testing.T) {
		history := []model.ChatMessage{
			{Role: "user", Content: "oi"},
			{Role: "bot", Content: "olá"},
			{Role: "assistant", Content: "   "},
		}

		got := BuildMessages("sys", history, "tem sapato?")

		assert.Equal(t, []model.ChatMessage{
			{Role: model.RoleSystem, Content: "sys"},
			{Role: model.RoleUser, Content: "oi"},
			{Role: model.RoleAssistant, Content: "olá"},
			{Role: model.RoleUser, Content: "tem sapato?"},
		}, got)
	})

	t.Run("keeps only the last six turns", func(t *testing.T) {
		var history []model.ChatMessage
		for i := 0; i < 10; i++ {
			history = append(history, model.ChatMessage{Role: model.RoleUser, Content: string(rune('a' + i))})
		}

		got := BuildMessages("sys", history, "k")

		require.Len(t, got, 8)
		assert.Equal(t, "e", got[1].Content)
		assert.Equal(t, "j", got[6].Content)
		assert.Equal(t, "k", got[7].Content)
	})
}

func TestNewLLMSendsZeroTemperature(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	llm := NewLLM(LLMConfig{APIKey: "gsk_test", BaseURL: srv.URL, Model: "llama3-70b-8192"}, zerolog.Nop())
	got, err := llm.Generate(context.Background(), []model.ChatMessage{{Role: model.RoleUser, Content: "oi"}})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	require.Contains(t, body, "temperature")
	assert.InDelta(t, 0, body["temperature"], 1e-30)
	assert.EqualValues(t, 600, body["max_tokens"])
}
