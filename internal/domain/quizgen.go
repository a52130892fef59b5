package domain

import "context"

// TextGenerator sends a prompt to a generative model and returns its raw reply.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// QuizGenerationService turns a prompt into a normalized quiz.
type QuizGenerationService interface {
	// GenerateQuiz builds the prompt for p, calls the model and normalizes the reply.
	// A reply that cannot be parsed yields a MALFORMED_QUIZ DomainError.
	GenerateQuiz(ctx context.Context, p QuizPrompt) (*QuizRecord, error)
}

// ModelResolver decides which generation model the run uses.
type ModelResolver interface {
	ResolveModel(ctx context.Context) (string, error)
}
