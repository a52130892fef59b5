package quizgen

import (
	"context"
	"fmt"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"
	"go.uber.org/zap"
)

// QuizGenerator implements domain.QuizGenerationService: prompt, call, normalize.
type QuizGenerator struct {
	generator domain.TextGenerator
	logger    *zap.Logger
}

// NewQuizGenerator creates a new instance of QuizGenerator.
func NewQuizGenerator(generator domain.TextGenerator, logger *zap.Logger) (*QuizGenerator, error) {
	if generator == nil {
		return nil, fmt.Errorf("text generator cannot be nil")
	}
	return &QuizGenerator{generator: generator, logger: logger}, nil
}

// GenerateQuiz renders the prompt for p and normalizes the model's reply.
func (q *QuizGenerator) GenerateQuiz(ctx context.Context, p domain.QuizPrompt) (*domain.QuizRecord, error) {
	prompt := BuildPrompt(p)
	q.logger.Debug("Sending quiz prompt", zap.String("word", p.Word), zap.String("style", string(p.Style)))

	raw, err := q.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	q.logger.Debug("Raw LLM response received", zap.String("word", p.Word), zap.String("raw_response", raw))

	record, err := Normalize(raw, p.Word)
	if err != nil {
		q.logger.Warn("Could not parse quiz from LLM response",
			zap.String("word", p.Word),
			zap.String("raw_response", raw),
			zap.Error(err),
		)
		return nil, err
	}
	return record, nil
}

// Static assertion to ensure QuizGenerator implements QuizGenerationService
var _ domain.QuizGenerationService = (*QuizGenerator)(nil)
