// Package export converts filled documents to PDF artifacts.
//
// The pipeline writes the filled document to a temporary .docx, hands it to
// an external converter, and moves the resulting PDF to a deterministic,
// collision-free name in the output directory. The temporary file is removed
// on every exit path.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/coverletter-generator/internal/docx"
)

// artifactPrefix starts every exported PDF filename.
const artifactPrefix = "CoverLetter"

// Exporter turns filled documents into PDF artifacts. OutputDir must exist;
// it is never created here. TempDir defaults to the OS temp directory and
// Now to time.Now.
type Exporter struct {
	OutputDir string
	Converter Converter
	TempDir   string
	Now       func() time.Time
}

// Export converts the document and returns the final artifact path, named
// CoverLetter_<SanitizedCompany>_<YYYY-MM-DD>.pdf with _1, _2, … appended on
// collision. Existing artifacts are never overwritten.
func (e *Exporter) Export(ctx context.Context, doc *docx.Document, companyName string) (string, error) {
	company := SanitizeFilename(companyName)
	date := e.now().Format("2006-01-02")

	tempPath := filepath.Join(e.tempDir(), "coverletter-"+uuid.NewString()+".docx")
	// Registered before Save so a partially written file is removed too.
	defer func() { _ = os.Remove(tempPath) }()
	if err := doc.Save(tempPath); err != nil {
		return "", fmt.Errorf("failed to write intermediate document: %w", err)
	}

	pdfPath, err := e.Converter.Convert(ctx, tempPath, e.OutputDir)
	if err != nil {
		return "", err
	}

	finalPath := nextFreePath(e.OutputDir, artifactPrefix+"_"+company+"_"+date)
	if err := os.Rename(pdfPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to move PDF into place: %w", err)
	}

	return finalPath, nil
}

// nextFreePath finds the first unused artifact name for the given stem.
func nextFreePath(dir, stem string) string {
	path := filepath.Join(dir, stem+".pdf")
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); err != nil {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.pdf", stem, counter))
	}
}

func (e *Exporter) tempDir() string {
	if e.TempDir != "" {
		return e.TempDir
	}
	return os.TempDir()
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
