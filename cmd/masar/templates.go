package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masar-app/masar/internal/catalog"
	"github.com/masar-app/masar/internal/types"
)

var templatesLanguage string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the template catalog",
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().StringVarP(&templatesLanguage, "language", "l", "", "Filter by language (ar or en)")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(_ *cobra.Command, _ []string) error {
	lang := types.Language(templatesLanguage)
	if lang != "" && !lang.Valid() {
		return fmt.Errorf("unknown language %q", templatesLanguage)
	}

	for _, d := range catalog.List(lang) {
		fmt.Printf("%-22s %-2s %-13s %s\n", d.ID, d.Language, d.Layout, d.Name)
	}
	return nil
}
