package quizgen

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/cache"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const generateContentMethod = "generateContent"

// StaticModel resolves to a fixed model identifier.
type StaticModel string

func (m StaticModel) ResolveModel(_ context.Context) (string, error) {
	if m == "" {
		return "", domain.NewNoModelError("no generation model configured")
	}
	return string(m), nil
}

// ModelInfo is the subset of the model listing the selector needs.
type ModelInfo struct {
	Name                       string
	SupportedGenerationMethods []string
}

// ModelLister lists the models available to the API key.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// GenaiModelLister lists Gemini models through the generative-ai-go client.
type GenaiModelLister struct {
	client *genai.Client
}

// NewGenaiModelLister creates a genai client for apiKey.
func NewGenaiModelLister(ctx context.Context, apiKey string) (*GenaiModelLister, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key cannot be empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GenaiModelLister{client: client}, nil
}

func (l *GenaiModelLister) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	it := l.client.ListModels(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, domain.NewLLMServiceError(fmt.Errorf("listing models: %w", err))
		}
		models = append(models, ModelInfo{
			Name:                       m.Name,
			SupportedGenerationMethods: m.SupportedGenerationMethods,
		})
	}
	return models, nil
}

func (l *GenaiModelLister) Close() error {
	return l.client.Close()
}

// SelectModel prefers a "flash" model, then a "pro" model, then the first one listed.
func SelectModel(names []string) (string, error) {
	if len(names) == 0 {
		return "", domain.NewNoModelError("no usable generation model found")
	}
	for _, preferred := range []string{"flash", "pro"} {
		for _, name := range names {
			if strings.Contains(name, preferred) {
				return name, nil
			}
		}
	}
	return names[0], nil
}

// GeminiModelDiscoverer picks a generation model from the live model listing.
// The selection is cached so repeated runs skip the listing call.
type GeminiModelDiscoverer struct {
	lister  ModelLister
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
	logger  *zap.Logger
}

// NewGeminiModelDiscoverer creates a discoverer. cache may be nil.
func NewGeminiModelDiscoverer(lister ModelLister, cache domain.Cache, ttl time.Duration, logger *zap.Logger) *GeminiModelDiscoverer {
	return &GeminiModelDiscoverer{
		lister: lister,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// UsableModels returns the names of listed models that support content generation,
// without the "models/" prefix.
func (d *GeminiModelDiscoverer) UsableModels(ctx context.Context) ([]string, error) {
	models, err := d.lister.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range models {
		if !slices.Contains(m.SupportedGenerationMethods, generateContentMethod) {
			continue
		}
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return names, nil
}

func (d *GeminiModelDiscoverer) ResolveModel(ctx context.Context) (string, error) {
	cacheKey := cache.GenerateCacheKey("gemini", "model", "selected")

	if d.cache != nil {
		cached, err := d.cache.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			d.logger.Debug("Model selection cache hit", zap.String("model", cached))
			return cached, nil
		}
		if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
			d.logger.Warn("Failed to read model selection from cache", zap.Error(err))
		}
	}

	res, err, _ := d.sfGroup.Do(cacheKey, func() (interface{}, error) {
		names, err := d.UsableModels(ctx)
		if err != nil {
			return nil, err
		}
		selected, err := SelectModel(names)
		if err != nil {
			return nil, err
		}
		d.logger.Info("Discovered generation model", zap.String("model", selected), zap.Int("available", len(names)))

		if d.cache != nil {
			if errSet := d.cache.Set(ctx, cacheKey, selected, d.ttl); errSet != nil {
				d.logger.Warn("Failed to cache model selection", zap.Error(errSet))
			}
		}
		return selected, nil
	})
	if err != nil {
		return "", err
	}

	if selected, ok := res.(string); ok {
		return selected, nil
	}
	return "", fmt.Errorf("unexpected type from singleflight.Do for model discovery: %T", res)
}

var (
	_ domain.ModelResolver = StaticModel("")
	_ domain.ModelResolver = (*GeminiModelDiscoverer)(nil)
)
