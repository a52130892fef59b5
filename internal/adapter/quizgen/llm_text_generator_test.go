package quizgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/config"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// fakeLLM records the options of the last call and replies with a canned answer.
type fakeLLM struct {
	reply    string
	err      error
	block    bool
	lastOpts llms.CallOptions
	prompt   string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.lastOpts = llms.CallOptions{}
	for _, opt := range options {
		opt(&f.lastOpts)
	}
	if len(messages) > 0 && len(messages[0].Parts) > 0 {
		if text, ok := messages[0].Parts[0].(llms.TextContent); ok {
			f.prompt = text.Text
		}
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestNewLLMTextGenerator(t *testing.T) {
	_, err := NewLLMTextGenerator(nil, "", config.LLMConfig{}, zap.NewNop())
	assert.Error(t, err)

	gen, err := NewLLMTextGenerator(&fakeLLM{}, "", config.LLMConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, defaultGenerationTimeout, gen.timeout)
}

func TestLLMTextGenerator_GenerateText(t *testing.T) {
	llm := &fakeLLM{reply: `{"q":"x"}`}
	gen, err := NewLLMTextGenerator(llm, "gemini-1.5-flash", config.LLMConfig{
		JSONMode:    true,
		Temperature: 0.4,
		Timeout:     time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	out, err := gen.GenerateText(context.Background(), "make a quiz")
	require.NoError(t, err)
	assert.Equal(t, `{"q":"x"}`, out)
	assert.Equal(t, "make a quiz", llm.prompt)
	assert.Equal(t, "gemini-1.5-flash", llm.lastOpts.Model)
	assert.True(t, llm.lastOpts.JSONMode)
	assert.InDelta(t, 0.4, llm.lastOpts.Temperature, 1e-9)
}

func TestLLMTextGenerator_DefaultModelAndPlainText(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	gen, err := NewLLMTextGenerator(llm, "", config.LLMConfig{}, zap.NewNop())
	require.NoError(t, err)

	_, err = gen.GenerateText(context.Background(), "p")
	require.NoError(t, err)
	assert.Empty(t, llm.lastOpts.Model)
	assert.False(t, llm.lastOpts.JSONMode)
}

func TestLLMTextGenerator_Errors(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		gen, err := NewLLMTextGenerator(&fakeLLM{err: errors.New("quota exceeded")}, "", config.LLMConfig{}, zap.NewNop())
		require.NoError(t, err)

		_, err = gen.GenerateText(context.Background(), "p")
		require.Error(t, err)
		assert.True(t, domain.HasCode(err, domain.ErrLLMServiceError))
		assert.ErrorContains(t, err, "quota exceeded")
	})

	t.Run("timeout", func(t *testing.T) {
		gen, err := NewLLMTextGenerator(&fakeLLM{block: true}, "", config.LLMConfig{Timeout: 20 * time.Millisecond}, zap.NewNop())
		require.NoError(t, err)

		_, err = gen.GenerateText(context.Background(), "p")
		require.Error(t, err)
		assert.True(t, domain.HasCode(err, domain.ErrLLMServiceError))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestNewLLM_Validation(t *testing.T) {
	_, err := NewLLM(context.Background(), config.LLMConfig{Provider: config.ProviderGemini})
	assert.ErrorContains(t, err, "Gemini API key cannot be empty")

	_, err = NewLLM(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI})
	assert.ErrorContains(t, err, "OpenAI API key cannot be empty")

	_, err = NewLLM(context.Background(), config.LLMConfig{Provider: "claude"})
	assert.ErrorContains(t, err, `unsupported llm provider "claude"`)
}

func TestNewLLM_Ollama(t *testing.T) {
	llm, err := NewLLM(context.Background(), config.LLMConfig{
		Provider: config.ProviderOllama,
		Ollama:   config.OllamaConfig{ServerURL: "http://localhost:11434", Model: "llama3"},
	})
	require.NoError(t, err)
	assert.NotNil(t, llm)
}
