package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masar-app/masar/internal/export"
	"github.com/masar-app/masar/internal/rendering"
	"github.com/masar-app/masar/internal/validation"
)

var (
	exportFile   string
	exportOutput string
	exportForce  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a CV as an A4 PDF",
	Long:  `Render a CV and capture it as a zero-margin A4 PDF. Requires a local Chrome or Chromium installation.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "CV JSON file (defaults to the local draft)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output PDF file (defaults to a name derived from the CV)")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Export even when completeness checks fail")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cv, err := loadCV(exportFile)
	if err != nil {
		return err
	}

	if problems := validation.ValidateCV(cv); len(problems) > 0 && !exportForce {
		fmt.Fprintln(os.Stderr, "CV is not complete enough to export:")
		for field, msg := range problems {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		return fmt.Errorf("%d problem(s) found (use --force to export anyway)", len(problems))
	}

	html, err := rendering.Render(cv)
	if err != nil {
		return err
	}

	exporter := export.NewExporter()
	pdf, filename, err := exporter.Export(context.Background(), export.Request{
		HTML:     html,
		AnchorID: rendering.AnchorID,
		Filename: cv.FullName,
		Language: cv.Language,
	})
	if err != nil {
		return err
	}

	if exportOutput != "" {
		filename = exportOutput
	}
	if err := os.WriteFile(filename, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", filename, len(pdf))
	return nil
}
