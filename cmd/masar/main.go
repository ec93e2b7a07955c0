// Package main provides the entry point for the Masar CV builder.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "masar",
	Short: "Masar CV builder",
	Long:  "Masar builds bilingual Arabic/English CVs: template-driven HTML rendering, A4 PDF export, completeness checks, and AI-assisted content, served over a REST API or driven from the command line.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
