package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masar-app/masar/internal/rendering"
)

var (
	renderFile   string
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a CV to HTML",
	Long:  `Render a CV record through its template to a standalone HTML document.`,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFile, "file", "f", "", "CV JSON file (defaults to the local draft)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output HTML file (defaults to stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	cv, err := loadCV(renderFile)
	if err != nil {
		return err
	}

	if renderOutput == "" {
		return rendering.RenderTo(os.Stdout, cv)
	}

	html, err := rendering.Render(cv)
	if err != nil {
		return err
	}
	if err := os.WriteFile(renderOutput, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Wrote %s\n", renderOutput)
	return nil
}
