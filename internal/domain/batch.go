package domain

import "context"

// QuizRunService runs one pass of the quiz generation pipeline.
type QuizRunService interface {
	Run(ctx context.Context) (*RunSummary, error)
}
