package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masar-app/masar/internal/observability"
	"github.com/masar-app/masar/internal/validation"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a CV for completeness",
	Long:  `Run the completeness checks an export requires and list any problems.`,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "CV JSON file (defaults to the local draft)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	cv, err := loadCV(validateFile)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintCV(cv)

	problems := validation.ValidateCV(cv)
	printer.PrintProblems(problems)
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) found", len(problems))
	}
	return nil
}
