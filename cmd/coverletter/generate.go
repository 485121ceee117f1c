// Package main provides the entry point for the cover letter generator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/coverletter-generator/internal/config"
	"github.com/jonathan/coverletter-generator/internal/export"
	"github.com/jonathan/coverletter-generator/internal/session"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Interactively fill templates and export PDFs",
	Long: `Runs the interactive session: pick a template from the menu, enter a value
for each placeholder, and a PDF lands in the output directory. Repeats until
'exit'.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runGenerate,
}

var (
	generateConfigPath   string
	generateTemplatesDir string
	generateOutputDir    string
	generateSoffice      string
	generateVerbose      bool
)

func init() {
	// Config file flag (processed first)
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCmd.Flags().StringVarP(&generateTemplatesDir, "templates-dir", "t", "", "Directory scanned for .docx templates (default \"Templates\")")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "o", "", "Directory where PDFs land (default \"Outputs\")")
	generateCmd.Flags().StringVar(&generateSoffice, "soffice", "", "LibreOffice executable (optional, defaults to COVERLETTER_SOFFICE env var or auto-discovery)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, generateConfigPath, generateTemplatesDir, generateOutputDir, generateSoffice, generateVerbose)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sess := &session.Session{
		Config:    cfg,
		Converter: &export.SofficeConverter{Binary: cfg.SofficePath},
		In:        os.Stdin,
		Out:       os.Stdout,
	}
	return sess.Run()
}

// resolveConfig builds the effective configuration: config file values first,
// then explicitly-set flags, then environment variables, then built-in
// defaults. Callers validate the directories they actually use.
func resolveConfig(cmd *cobra.Command, configPath, templatesDir, outputDir, soffice string, verbose bool) (*config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if verbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", configPath)
		}
	}

	// CLI overrides: only when the flag was explicitly set
	if cmd.Flags().Changed("templates-dir") {
		cfg.TemplatesDir = templatesDir
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("soffice") {
		cfg.SofficePath = soffice
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}

	// Environment fallbacks for anything still unset
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = os.Getenv("COVERLETTER_TEMPLATES_DIR")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.Getenv("COVERLETTER_OUTPUT_DIR")
	}
	if cfg.SofficePath == "" {
		cfg.SofficePath = os.Getenv("COVERLETTER_SOFFICE")
	}

	merged := cfg.MergeWithDefaults(config.Default())
	return &merged, nil
}
