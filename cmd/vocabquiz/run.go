package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/adapter"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/adapter/notion"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/adapter/quizgen"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/logger"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRun   bool
	pageSize int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate today's quizzes and write them to Notion",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runQuizzes(ctx, cmd.Flags().Changed("page-size"))
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "generate quizzes but only log them")
	runCmd.Flags().IntVar(&pageSize, "page-size", 5, "maximum number of pages fetched from Notion")
	rootCmd.AddCommand(runCmd)
}

func runQuizzes(ctx context.Context, pageSizeSet bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Get()

	if pageSizeSet {
		cfg.Notion.PageSize = pageSize
	}
	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", zap.Error(err))
		return err
	}
	log.Info("Quiz generator starting up...",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("filter", cfg.Notion.Filter),
		zap.Bool("dry_run", dryRun),
	)

	cacheAdapter, closeCache := newCache(ctx, cfg)
	defer closeCache()

	resolver, closeResolver, err := newModelResolver(ctx, cfg, cacheAdapter)
	if err != nil {
		log.Error("Failed to initialize model resolver", zap.Error(err))
		return err
	}
	defer closeResolver()

	model, err := resolver.ResolveModel(ctx)
	if err != nil {
		log.Error("Failed to resolve generation model", zap.Error(err))
		return err
	}
	log.Info("Using generation model", zap.String("model", model))

	llm, err := quizgen.NewLLM(ctx, cfg.LLM)
	if err != nil {
		log.Error("Failed to initialize LLM client", zap.Error(err))
		return err
	}
	textGen, err := quizgen.NewLLMTextGenerator(llm, model, cfg.LLM, log)
	if err != nil {
		return err
	}
	quizGenerator, err := quizgen.NewQuizGenerator(textGen, log)
	if err != nil {
		return err
	}

	store, err := notion.NewStore(notion.NewClient(cfg.Notion.Token, nil), cfg.Notion, log)
	if err != nil {
		log.Error("Failed to initialize Notion store", zap.Error(err))
		return err
	}
	var sink domain.QuizSink = store
	if dryRun {
		sink = adapter.NewDryRunSink(log)
	}

	runSvc := service.NewQuizRunService(store, quizGenerator, sink, service.RunOptions{
		Location: cfg.Location(),
		Cache:    cacheAdapter,
	}, log)

	summary, err := runSvc.Run(ctx)
	if err != nil {
		return fmt.Errorf("quiz run failed: %w", err)
	}
	log.Info("Quiz generator finished.", zap.Int("generated", summary.Generated))
	return nil
}
