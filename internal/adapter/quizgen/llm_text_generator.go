package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/config"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const defaultGenerationTimeout = 30 * time.Second

// NewLLM creates the LangchainGo client for the configured provider.
func NewLLM(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("Gemini API key cannot be empty")
		}
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.Gemini.APIKey),
			googleai.WithDefaultModel(cfg.Gemini.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create LangchainGo Gemini client: %w", err)
		}
		return llm, nil
	case config.ProviderOllama:
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.Ollama.ServerURL),
			ollama.WithModel(cfg.Ollama.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
		}
		return llm, nil
	case config.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key cannot be empty")
		}
		llm, err := openai.New(
			openai.WithToken(cfg.OpenAI.APIKey),
			openai.WithModel(cfg.OpenAI.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// LLMTextGenerator implements domain.TextGenerator on top of a LangchainGo model.
type LLMTextGenerator struct {
	llm         llms.Model
	model       string
	jsonMode    bool
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewLLMTextGenerator wraps llm. model overrides the client's default model when non-empty.
func NewLLMTextGenerator(llm llms.Model, model string, cfg config.LLMConfig, logger *zap.Logger) (*LLMTextGenerator, error) {
	if llm == nil {
		return nil, fmt.Errorf("llm client cannot be nil")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	return &LLMTextGenerator{
		llm:         llm,
		model:       model,
		jsonMode:    cfg.JSONMode,
		temperature: cfg.Temperature,
		timeout:     timeout,
		logger:      logger,
	}, nil
}

// GenerateText sends prompt as a single human message and returns the first choice.
func (g *LLMTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	opts := []llms.CallOption{llms.WithTemperature(g.temperature)}
	if g.model != "" {
		opts = append(opts, llms.WithModel(g.model))
	}
	if g.jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.Error("LLM request timed out", zap.Duration("timeout", g.timeout), zap.Error(err))
			return "", domain.NewLLMServiceError(fmt.Errorf("LLM request timed out: %w", err))
		}
		g.logger.Error("Failed to get response from LLM", zap.Error(err))
		return "", domain.NewLLMServiceError(fmt.Errorf("LLM call failed: %w", err))
	}
	return response, nil
}

var _ domain.TextGenerator = (*LLMTextGenerator)(nil)
