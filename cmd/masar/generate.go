package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masar-app/masar/internal/ai"
	"github.com/masar-app/masar/internal/types"
)

var (
	generateText     string
	generateFile     string
	generateLanguage string
	generateOutput   string
	generateAPIKey   string
	generateSummary  bool
	generateSkills   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate CV content with AI",
	Long: `Generate CV content with AI. Three modes:

  --text FILE   extract a full CV draft from free-form text
  --summary     rewrite the draft's professional summary
  --skills      suggest skills for the draft's job title`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateText, "text", "t", "", "Text file to extract a full CV from")
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "CV JSON file to operate on (defaults to the local draft)")
	generateCmd.Flags().BoolVar(&generateSummary, "summary", false, "Rewrite the CV's professional summary")
	generateCmd.Flags().BoolVar(&generateSkills, "skills", false, "Suggest skills for the CV's job title")
	generateCmd.Flags().StringVarP(&generateLanguage, "language", "l", "ar", "Target CV language for --text (ar or en)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the CV JSON here instead of the local draft store")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	generateCmd.MarkFlagsMutuallyExclusive("text", "summary", "skills")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	apiKey := generateAPIKey
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
	svc := ai.NewService(client)

	var cv *types.CVRecord
	switch {
	case generateText != "":
		lang := types.Language(generateLanguage)
		if !lang.Valid() {
			return fmt.Errorf("unknown language %q", generateLanguage)
		}
		text, err := os.ReadFile(generateText)
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
		cv, err = svc.FromFreeText(ctx, string(text), lang)
		if err != nil {
			return err
		}

	case generateSummary:
		cv, err = loadCV(generateFile)
		if err != nil {
			return err
		}
		summary, err := svc.Summary(ctx, cv.Summary, cv.JobTitle, cv.TargetCompany, cv.Language)
		if err != nil {
			return err
		}
		cv.Summary = summary

	case generateSkills:
		cv, err = loadCV(generateFile)
		if err != nil {
			return err
		}
		skills, err := svc.Skills(ctx, cv.JobTitle, cv.Language)
		if err != nil {
			return err
		}
		if len(skills) == 0 {
			return fmt.Errorf("no skills suggested for %q", cv.JobTitle)
		}
		cv.Skills = mergeSkills(cv.Skills, skills)

	default:
		return fmt.Errorf("one of --text, --summary, or --skills is required")
	}

	if generateOutput != "" {
		data, err := json.MarshalIndent(cv, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal CV: %w", err)
		}
		if err := os.WriteFile(generateOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("Wrote %s\n", generateOutput)
		return nil
	}

	if err := saveDraft(cv); err != nil {
		return err
	}
	fmt.Printf("Saved draft for %s to %s\n", cv.FullName, stateDir())
	return nil
}

// mergeSkills appends suggestions that are not already present.
func mergeSkills(existing, suggested []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}
	merged := existing
	for _, s := range suggested {
		if !seen[s] {
			merged = append(merged, s)
			seen[s] = true
		}
	}
	return merged
}
