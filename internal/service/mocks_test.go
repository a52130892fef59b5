package service

import (
	"context"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockVocabularySource ---
type MockVocabularySource struct {
	mock.Mock
}

func (m *MockVocabularySource) FetchCandidates(ctx context.Context) ([]domain.QuizCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizCandidate), args.Error(1)
}

// --- MockQuizGenerationService ---
type MockQuizGenerationService struct {
	mock.Mock
}

func (m *MockQuizGenerationService) GenerateQuiz(ctx context.Context, p domain.QuizPrompt) (*domain.QuizRecord, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

// --- MockQuizSink ---
type MockQuizSink struct {
	mock.Mock
}

func (m *MockQuizSink) WriteQuiz(ctx context.Context, candidate domain.QuizCandidate, quiz domain.RenderedQuiz, quizDate time.Time) error {
	args := m.Called(ctx, candidate, quiz, quizDate)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
