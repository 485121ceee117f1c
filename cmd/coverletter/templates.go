// Package main provides the entry point for the cover letter generator CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/coverletter-generator/internal/session"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available templates",
	Long:  "Lists the .docx templates found in the templates directory, with the numbers the interactive session uses.",
	RunE:  runTemplates,
}

var (
	templatesConfigPath string
	templatesDir        string
	templatesVerbose    bool
)

func init() {
	templatesCmd.Flags().StringVar(&templatesConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	templatesCmd.Flags().StringVarP(&templatesDir, "templates-dir", "t", "", "Directory scanned for .docx templates (default \"Templates\")")
	templatesCmd.Flags().BoolVarP(&templatesVerbose, "verbose", "v", false, "Print full paths instead of display names")

	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, templatesConfigPath, templatesDir, "", "", templatesVerbose)
	if err != nil {
		return err
	}
	if err := cfg.ValidateTemplatesDir(); err != nil {
		return err
	}

	templates, err := session.ListTemplates(cfg.TemplatesDir)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "No templates found in %s.\n", cfg.TemplatesDir)
		return nil
	}

	for i, path := range templates {
		name := session.DisplayName(path)
		if templatesVerbose {
			name = filepath.Clean(path)
		}
		_, _ = fmt.Fprintf(os.Stdout, "%d. %s\n", i+1, name)
	}
	return nil
}
