package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/adapter"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/adapter/quizgen"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/cache"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/config"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/logger"

	"go.uber.org/zap"
)

const defaultModelDiscoveryTTL = 24 * time.Hour

// loadConfig reads the configuration and initializes the global logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// newCache connects to redis when an address is configured.
// An unreachable server is logged and the run continues without a cache.
func newCache(ctx context.Context, cfg *config.Config) (domain.Cache, func()) {
	if cfg.Redis.Address == "" {
		logger.Get().Info("Redis cache is not configured. Running without cache.")
		return nil, func() {}
	}
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Get().Warn("Failed to initialize Redis client, running without cache", zap.Error(err))
		return nil, func() {}
	}
	logger.Get().Info("Redis cache initialized successfully.", zap.String("address", cfg.Redis.Address))
	return adapter.NewRedisCacheAdapter(redisClient), func() { _ = redisClient.Close() }
}

// newModelResolver picks the model the generator will request.
func newModelResolver(ctx context.Context, cfg *config.Config, cacheAdapter domain.Cache) (domain.ModelResolver, func(), error) {
	switch cfg.LLM.Provider {
	case config.ProviderOllama:
		return quizgen.StaticModel(cfg.LLM.Ollama.Model), func() {}, nil
	case config.ProviderOpenAI:
		return quizgen.StaticModel(cfg.LLM.OpenAI.Model), func() {}, nil
	}

	if !cfg.LLM.Gemini.AutoDiscover {
		return quizgen.StaticModel(cfg.LLM.Gemini.Model), func() {}, nil
	}
	discoverer, closer, err := newGeminiDiscoverer(ctx, cfg, cacheAdapter)
	if err != nil {
		return nil, nil, err
	}
	return discoverer, closer, nil
}

func newGeminiDiscoverer(ctx context.Context, cfg *config.Config, cacheAdapter domain.Cache) (*quizgen.GeminiModelDiscoverer, func(), error) {
	lister, err := quizgen.NewGenaiModelLister(ctx, cfg.LLM.Gemini.APIKey)
	if err != nil {
		return nil, nil, err
	}
	ttl := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.ModelDiscovery, defaultModelDiscoveryTTL)
	discoverer := quizgen.NewGeminiModelDiscoverer(lister, cacheAdapter, ttl, logger.Get())
	return discoverer, func() { _ = lister.Close() }, nil
}
