// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for the interactive session
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
		// Truncate long lines, counting runes so multibyte characters
		// are never split mid-sequence
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBanner outputs the session header.
func (p *Printer) PrintBanner() {
	p.printBox("COVER LETTER GENERATOR", "Fill a template, export a PDF.")
}

// PrintTemplateMenu outputs the numbered template menu.
func (p *Printer) PrintTemplateMenu(names []string) {
	var sb strings.Builder
	for i, name := range names {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
	sb.WriteString("\nType 'exit' to quit")
	p.printBox("AVAILABLE TEMPLATES", sb.String())
}

// PrintPlaceholders outputs the fields discovered in a template.
func (p *Printer) PrintPlaceholders(names []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d placeholder(s):\n", len(names)))
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("  • [%s]\n", name))
	}
	p.printBox("TEMPLATE FIELDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintArtifact outputs the path of an exported PDF.
func (p *Printer) PrintArtifact(path string) {
	p.printBox("PDF EXPORTED", "Saved: "+path)
}
