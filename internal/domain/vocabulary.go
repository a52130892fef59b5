package domain

import (
	"context"
	"time"
)

// VocabularySource reads review-eligible entries from the document store.
type VocabularySource interface {
	FetchCandidates(ctx context.Context) ([]QuizCandidate, error)
}

// QuizSink writes a rendered quiz back onto the candidate's record.
type QuizSink interface {
	WriteQuiz(ctx context.Context, candidate QuizCandidate, quiz RenderedQuiz, quizDate time.Time) error
}
