// Package main provides the entry point for the cover letter generator CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/coverletter-generator/internal/docx"
	"github.com/jonathan/coverletter-generator/internal/export"
	"github.com/jonathan/coverletter-generator/internal/filling"
	"github.com/jonathan/coverletter-generator/internal/session"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill one template non-interactively and export a PDF",
	Long: `Fills a single template with values given on the command line and exports
the PDF, without the interactive menu. A [Date] field is auto-filled with
today's date unless --set overrides it. Placeholders without a value are
reported and left intact.`,
	RunE: runFill,
}

var (
	fillConfigPath string
	fillTemplate   string
	fillSets       []string
	fillCompany    string
	fillOutputDir  string
	fillSoffice    string
	fillVerbose    bool
)

func init() {
	fillCmd.Flags().StringVar(&fillConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	fillCmd.Flags().StringVarP(&fillTemplate, "template", "t", "", "Path to the .docx template (required)")
	fillCmd.Flags().StringArrayVarP(&fillSets, "set", "s", nil, "Placeholder value as Name=Value (repeatable)")
	fillCmd.Flags().StringVarP(&fillCompany, "company", "c", "", "Company name for the artifact filename (defaults to the Company Name/Company/Employer value)")
	fillCmd.Flags().StringVarP(&fillOutputDir, "output-dir", "o", "", "Directory where the PDF lands (default \"Outputs\")")
	fillCmd.Flags().StringVar(&fillSoffice, "soffice", "", "LibreOffice executable (optional, defaults to COVERLETTER_SOFFICE env var or auto-discovery)")
	fillCmd.Flags().BoolVarP(&fillVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, _ []string) error {
	if fillTemplate == "" {
		return fmt.Errorf("--template is required")
	}

	cfg, err := resolveConfig(cmd, fillConfigPath, "", fillOutputDir, fillSoffice, fillVerbose)
	if err != nil {
		return err
	}
	if err := cfg.ValidateOutputDir(); err != nil {
		return err
	}

	provided, err := parseSetFlags(fillSets)
	if err != nil {
		return err
	}

	doc, err := docx.Open(fillTemplate)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	names := filling.Scan(doc)
	if len(names) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No placeholders found in this template; nothing to fill.")
		return nil
	}

	values := make(filling.Values, len(names))
	var missing []string
	for _, name := range names {
		if value, ok := provided[name]; ok {
			values[name] = value
		} else if strings.EqualFold(name, "date") {
			values[name] = time.Now().Format("2006-01-02")
		} else {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		// Unset names stay bracketed rather than being blanked, so a
		// mistyped --set never silently destroys a token.
		_, _ = fmt.Fprintf(os.Stdout, "Leaving %d placeholder(s) unfilled: [%s]\n", len(missing), strings.Join(missing, "], ["))
	}

	filling.Fill(doc, values)

	company := fillCompany
	if company == "" {
		company = session.CompanyName(values)
	}

	exporter := &export.Exporter{
		OutputDir: cfg.OutputDir,
		Converter: &export.SofficeConverter{Binary: cfg.SofficePath},
	}
	artifact, err := exporter.Export(context.Background(), doc, company)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Saved: %s\n", artifact)
	return nil
}

// parseSetFlags splits repeated Name=Value flags into a value map. Only the
// first '=' separates; values may contain more of them.
func parseSetFlags(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected Name=Value", pair)
		}
		values[name] = strings.TrimSpace(value)
	}
	return values, nil
}
