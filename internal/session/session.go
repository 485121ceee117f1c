// Package session drives the interactive template-fill-export loop.
//
// One template is processed end-to-end per iteration: list, select, scan,
// collect, fill, export. Every failure short of an unreadable input stream is
// reported and the loop continues; the session ends on 'exit', end of input,
// or an empty templates directory.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/coverletter-generator/internal/config"
	"github.com/jonathan/coverletter-generator/internal/docx"
	"github.com/jonathan/coverletter-generator/internal/export"
	"github.com/jonathan/coverletter-generator/internal/filling"
	"github.com/jonathan/coverletter-generator/internal/observability"
	"github.com/jonathan/coverletter-generator/internal/prompting"
)

// Session holds the wiring for one interactive run. In and Out default to
// nothing useful; callers must provide them. Converter and Now are injectable
// for tests; Converter defaults to headless LibreOffice.
type Session struct {
	Config    *config.Config
	Converter export.Converter
	In        io.Reader
	Out       io.Writer
	Now       func() time.Time
}

// Run executes the interactive loop until the user exits, input ends, or no
// templates remain.
func (s *Session) Run() error {
	printer := observability.NewPrinter(s.Out)
	reader := bufio.NewReader(s.In)

	printer.PrintBanner()

	for {
		templates, err := ListTemplates(s.Config.TemplatesDir)
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			fmt.Fprintf(s.Out, "\nNo templates found in %s.\n", s.Config.TemplatesDir)
			return nil
		}

		names := make([]string, len(templates))
		for i, t := range templates {
			names[i] = DisplayName(t)
		}
		fmt.Fprintln(s.Out)
		printer.PrintTemplateMenu(names)

		fmt.Fprint(s.Out, "\nSelect template number: ")
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read selection: %w", err)
		}
		choice := strings.ToLower(strings.TrimSpace(line))

		if choice == "exit" || (err == io.EOF && choice == "") {
			fmt.Fprintln(s.Out, "\nGoodbye!")
			return nil
		}

		index, convErr := strconv.Atoi(choice)
		if convErr != nil {
			fmt.Fprintln(s.Out, "\nInvalid input. Please enter a number or 'exit'.")
			continue
		}
		if index < 1 || index > len(templates) {
			fmt.Fprintln(s.Out, "\nInvalid selection. Please try again.")
			continue
		}

		s.processTemplate(printer, reader, templates[index-1])

		if err == io.EOF {
			return nil
		}
	}
}

// processTemplate runs scan → collect → fill → export for one template.
// All failures are reported to the user; none end the session.
func (s *Session) processTemplate(printer *observability.Printer, reader *bufio.Reader, path string) {
	fmt.Fprintf(s.Out, "\nLoading template: %s\n", filepath.Base(path))

	doc, err := docx.Open(path)
	if err != nil {
		fmt.Fprintf(s.Out, "\nError loading template: %v\n", err)
		return
	}

	names := filling.Scan(doc)
	if len(names) == 0 {
		fmt.Fprintln(s.Out, "\nNo placeholders found in this template.")
		return
	}
	printer.PrintPlaceholders(names)

	collector := &prompting.Collector{In: reader, Out: s.Out, Now: s.Now}
	values, err := collector.Collect(names)
	if err != nil {
		fmt.Fprintf(s.Out, "\nError reading values: %v\n", err)
		return
	}

	filling.Fill(doc, values)

	fmt.Fprintln(s.Out, "\nGenerating PDF...")
	exporter := &export.Exporter{
		OutputDir: s.Config.OutputDir,
		Converter: s.converter(),
		Now:       s.Now,
	}
	artifact, err := exporter.Export(context.Background(), doc, CompanyName(values))
	if err != nil {
		fmt.Fprintf(s.Out, "\nError converting to PDF: %v\n", err)
		return
	}

	printer.PrintArtifact(artifact)
}

func (s *Session) converter() export.Converter {
	if s.Converter != nil {
		return s.Converter
	}
	return &export.SofficeConverter{Binary: s.Config.SofficePath}
}
