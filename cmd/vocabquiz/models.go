package main

import (
	"fmt"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/adapter/quizgen"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/logger"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the Gemini models usable for quiz generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.LLM.Gemini.APIKey == "" {
			return domain.NewInvalidConfigError("gemini api key (GEMINI_API_KEY) is required")
		}

		ctx := cmd.Context()
		discoverer, closeLister, err := newGeminiDiscoverer(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer closeLister()

		names, err := discoverer.UsableModels(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}

		selected, err := quizgen.SelectModel(names)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nselected: %s\n", selected)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
