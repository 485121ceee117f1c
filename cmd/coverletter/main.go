// Package main provides the entry point for the cover letter generator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coverletter",
	Short: "Cover Letter Generator",
	Long:  "Coverletter fills [Placeholder] fields in .docx cover letter templates with job-specific values and exports the result as a PDF via headless LibreOffice.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
