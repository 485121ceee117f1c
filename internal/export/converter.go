// Package export converts filled documents to PDF artifacts.
package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Converter produces a PDF in outputDir from a document file. The only
// contract is: a nil error means the returned path exists. Anything
// satisfying this — LibreOffice, a test fake — is substitutable.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputDir string) (string, error)
}

// wellKnownSofficePaths are checked when soffice is not on PATH.
var wellKnownSofficePaths = []string{
	`C:\Program Files\LibreOffice\program\soffice.exe`,
	`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
	"/usr/bin/soffice",
}

// SofficeConverter runs LibreOffice headless to convert documents to PDF.
// Binary overrides executable discovery; leave it empty to search PATH and
// the usual install locations.
type SofficeConverter struct {
	Binary string
}

// binary resolves the soffice executable. The bare name is the final
// fallback so the subprocess error names the missing program.
func (c *SofficeConverter) binary() string {
	if c.Binary != "" {
		return c.Binary
	}
	if path, err := exec.LookPath("soffice"); err == nil {
		return path
	}
	for _, path := range wellKnownSofficePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return "soffice"
}

// Convert runs soffice in headless mode and returns the path of the PDF it
// produced. The converter names its output after the input file's base name,
// with a .pdf extension, inside outputDir. No timeout is imposed; pass a
// cancellable context to bound the call.
func (c *SofficeConverter) Convert(ctx context.Context, inputPath, outputDir string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binary(),
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outputDir,
		inputPath,
	)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	logOutput := stdout.String() + stderr.String()

	if runErr != nil {
		return "", &ConversionError{
			Message:   "converter exited with an error",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	base := filepath.Base(inputPath)
	pdfPath := filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", &ConversionError{
			Message:   fmt.Sprintf("converter reported success but %s was not created", pdfPath),
			LogOutput: logOutput,
			Cause:     err,
		}
	}

	return pdfPath, nil
}
