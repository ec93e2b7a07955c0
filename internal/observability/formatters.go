// Package observability provides formatted output utilities for CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/masar-app/masar/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the command line
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCV outputs a human-readable summary of a CV record.
func (p *Printer) PrintCV(cv *types.CVRecord) {
	if cv == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", cv.FullName))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", cv.JobTitle))
	sb.WriteString(fmt.Sprintf("Language: %s\n", cv.Language))
	sb.WriteString(fmt.Sprintf("Template: %s\n", cv.TemplateID))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(cv.Skills)))
	for i, skill := range cv.Skills {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cv.Skills)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  - %s\n", skill))
	}

	sb.WriteString(fmt.Sprintf("Experience entries: %d\n", len(cv.Experience)))
	for i, exp := range cv.Experience {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cv.Experience)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  - %s, %s\n", exp.Title, exp.Company))
	}
	sb.WriteString(fmt.Sprintf("Education entries:  %d\n", len(cv.Education)))

	p.printBox("CV Draft", strings.TrimRight(sb.String(), "\n"))
}

// PrintProblems outputs completeness problems keyed by field.
func (p *Printer) PrintProblems(problems map[string]string) {
	if len(problems) == 0 {
		p.printBox("Completeness", "No problems found; ready to export.")
		return
	}

	var sb strings.Builder
	for field, msg := range problems {
		sb.WriteString(fmt.Sprintf("%-12s %s\n", field+":", msg))
	}
	p.printBox(fmt.Sprintf("Completeness (%d problems)", len(problems)), strings.TrimRight(sb.String(), "\n"))
}

// PrintAnalysis outputs an ATS analysis result.
func (p *Printer) PrintAnalysis(a *types.ATSAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100\n", a.Score))
	if len(a.MissingKeywords) > 0 {
		sb.WriteString("Missing keywords:\n")
		for i, kw := range a.MissingKeywords {
			if i >= maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.MissingKeywords)-maxItemsToShow))
				break
			}
			sb.WriteString(fmt.Sprintf("  - %s\n", kw))
		}
	}
	sb.WriteString(fmt.Sprintf("Feedback: %s", a.Feedback))
	p.printBox("ATS Analysis", sb.String())
}
