package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/cache"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/util"

	"go.uber.org/zap"
)

const quizMarkerTTL = 36 * time.Hour

// RunOptions tunes a quizRunService. Zero values select production behaviour.
type RunOptions struct {
	// Now returns the current time; "today" is its date in Location.
	Now      func() time.Time
	Location *time.Location
	// Rand drives candidate order, quiz style and option order.
	Rand *rand.Rand
	// Cache stores per-page quiz markers. Nil disables them.
	Cache domain.Cache
}

// quizRunService implements the domain.QuizRunService interface.
type quizRunService struct {
	source    domain.VocabularySource
	generator domain.QuizGenerationService
	sink      domain.QuizSink
	cache     domain.Cache
	now       func() time.Time
	location  *time.Location
	rng       *rand.Rand
	logger    *zap.Logger
}

// NewQuizRunService creates a new instance of quizRunService.
func NewQuizRunService(
	source domain.VocabularySource,
	generator domain.QuizGenerationService,
	sink domain.QuizSink,
	opts RunOptions,
	logger *zap.Logger,
) domain.QuizRunService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &quizRunService{
		source:    source,
		generator: generator,
		sink:      sink,
		cache:     opts.Cache,
		now:       opts.Now,
		location:  opts.Location,
		rng:       opts.Rand,
		logger:    logger,
	}
}

// Run fetches candidates, drops the ones already quizzed today, and quizzes the rest one by one.
// Only a failed source query is returned; per-candidate failures are logged and counted.
func (s *quizRunService) Run(ctx context.Context) (*domain.RunSummary, error) {
	runID := util.NewULID()
	log := s.logger.With(zap.String("run_id", runID))
	today := s.today()
	log.Info("Starting quiz generation run", zap.String("date", today.Format(time.DateOnly)))

	fetched, err := s.source.FetchCandidates(ctx)
	if err != nil {
		log.Error("Failed to fetch quiz candidates", zap.Error(err))
		return nil, err
	}

	candidates := make([]domain.QuizCandidate, 0, len(fetched))
	for _, c := range fetched {
		if c.QuizzedOn(today) {
			log.Debug("Already quizzed today, skipping", zap.String("word", c.Word), zap.String("page_id", c.ID))
			continue
		}
		candidates = append(candidates, c)
	}

	summary := &domain.RunSummary{Candidates: len(candidates)}
	if len(candidates) == 0 {
		log.Info("No words need quizzing today.")
		return summary, nil
	}

	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	log.Info("Processing candidates", zap.Int("count", len(candidates)))

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			log.Warn("Run cancelled, stopping early", zap.Error(err))
			return summary, err
		}

		candidateLog := log.With(zap.String("word", candidate.Word), zap.String("page_id", candidate.ID))
		if s.alreadyMarked(ctx, candidate, today, candidateLog) {
			summary.Skipped++
			continue
		}

		prompt := domain.QuizPrompt{Word: candidate.Word, Style: domain.PickStyle(s.rng)}
		candidateLog.Info("Generating quiz", zap.String("style", string(prompt.Style)))

		record, err := s.generator.GenerateQuiz(ctx, prompt)
		if err != nil {
			if domain.HasCode(err, domain.ErrMalformedQuiz) {
				candidateLog.Warn("Skipping word, model reply was not a usable quiz", zap.Error(err))
				summary.Skipped++
			} else {
				candidateLog.Error("Failed to generate quiz", zap.Error(err))
				summary.Failed++
			}
			continue
		}

		rendered := domain.RenderQuiz(*record, s.rng)
		if err := s.sink.WriteQuiz(ctx, candidate, rendered, today); err != nil {
			candidateLog.Error("Failed to write quiz", zap.Error(err))
			summary.Failed++
			continue
		}

		s.mark(ctx, candidate, today, rendered.CorrectLabel, candidateLog)
		summary.Generated++
		candidateLog.Info("Generated MCQ", zap.String("answer", rendered.CorrectLabel))
	}

	log.Info("Quiz generation run completed",
		zap.Int("candidates", summary.Candidates),
		zap.Int("generated", summary.Generated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// today is midnight of the current date in the configured location.
func (s *quizRunService) today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}

func (s *quizRunService) alreadyMarked(ctx context.Context, c domain.QuizCandidate, day time.Time, log *zap.Logger) bool {
	if s.cache == nil {
		return false
	}
	_, err := s.cache.Get(ctx, cache.QuizMarkerKey(c.ID, day))
	if err == nil {
		log.Info("Quiz marker found for today, skipping")
		return true
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		log.Warn("Failed to read quiz marker", zap.Error(err))
	}
	return false
}

func (s *quizRunService) mark(ctx context.Context, c domain.QuizCandidate, day time.Time, label string, log *zap.Logger) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cache.QuizMarkerKey(c.ID, day), label, quizMarkerTTL); err != nil {
		log.Warn("Failed to set quiz marker", zap.Error(err))
	}
}
