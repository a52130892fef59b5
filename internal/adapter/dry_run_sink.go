package adapter

import (
	"context"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"

	"go.uber.org/zap"
)

// DryRunSink logs rendered quizzes instead of writing them.
type DryRunSink struct {
	logger *zap.Logger
}

func NewDryRunSink(logger *zap.Logger) *DryRunSink {
	return &DryRunSink{logger: logger}
}

func (d *DryRunSink) WriteQuiz(_ context.Context, candidate domain.QuizCandidate, quiz domain.RenderedQuiz, quizDate time.Time) error {
	d.logger.Info("Dry run: quiz not written",
		zap.String("page_id", candidate.ID),
		zap.String("word", candidate.Word),
		zap.String("date", quizDate.Format(time.DateOnly)),
		zap.String("answer", quiz.CorrectLabel),
		zap.String("question", quiz.Text),
	)
	return nil
}

var _ domain.QuizSink = (*DryRunSink)(nil)
