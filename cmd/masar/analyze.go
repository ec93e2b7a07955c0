package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masar-app/masar/internal/ai"
	"github.com/masar-app/masar/internal/observability"
)

var (
	analyzeFile   string
	analyzeAPIKey string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a CV for ATS fit",
	Long:  `Run the ATS analysis over a CV and print the score, missing keywords, and feedback.`,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "CV JSON file (defaults to the local draft)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	cv, err := loadCV(analyzeFile)
	if err != nil {
		return err
	}

	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("an API key is required (--api-key or GEMINI_API_KEY)")
	}

	ctx := context.Background()
	client, err := ai.NewGeminiClient(ctx, apiKey, ai.DefaultModel)
	if err != nil {
		return err
	}
	defer client.Close()

	// Analyze falls back to a neutral result on model failures
	analysis, _ := ai.NewService(client).Analyze(ctx, cv)
	observability.NewPrinter(os.Stdout).PrintAnalysis(analysis)
	return nil
}
