// Package docx reads and writes Word (.docx) documents at the text-run level.
//
// A .docx file is a zip archive whose main text lives in word/document.xml.
// Open keeps every archive entry verbatim and parses only document.xml, into a
// raw token stream with paragraphs and runs indexed on top. Callers mutate run
// text in place and Save writes the archive back; formatting, styles, and all
// parts we never looked at round-trip untouched.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// documentPath is the archive entry holding the main document body.
const documentPath = "word/document.xml"

// part is one archive entry, preserved byte-for-byte unless it is the
// document body.
type part struct {
	name string
	data []byte
}

// Document is an in-memory .docx file.
type Document struct {
	parts  []part
	tokens []token
	paras  []*Paragraph
}

// Open reads a .docx file from disk.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat document %s: %w", path, err)
	}

	return OpenReader(f, info.Size())
}

// OpenReader reads a .docx document from an in-memory or seekable source.
func OpenReader(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &FormatError{Message: "not a valid docx archive", Cause: err}
	}

	doc := &Document{}
	var body []byte
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &FormatError{Message: fmt.Sprintf("failed to open archive entry %s", f.Name), Cause: err}
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, &FormatError{Message: fmt.Sprintf("failed to read archive entry %s", f.Name), Cause: err}
		}
		doc.parts = append(doc.parts, part{name: f.Name, data: data})
		if f.Name == documentPath {
			body = data
		}
	}

	if body == nil {
		return nil, &FormatError{Message: "archive has no word/document.xml"}
	}

	tokens, paras, err := parseDocumentXML(body)
	if err != nil {
		return nil, err
	}
	doc.tokens = tokens
	doc.paras = paras
	for _, p := range paras {
		for _, r := range p.runs {
			r.doc = doc
		}
	}

	return doc, nil
}

// Paragraphs returns every paragraph in document order, including paragraphs
// inside table cells.
func (d *Document) Paragraphs() []*Paragraph {
	return d.paras
}

// Write serializes the document as a .docx archive.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		ew, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("failed to create archive entry %s: %w", p.name, err)
		}
		if p.name == documentPath {
			if err := writeTokens(ew, d.tokens); err != nil {
				return fmt.Errorf("failed to serialize document body: %w", err)
			}
			continue
		}
		if _, err := ew.Write(p.data); err != nil {
			return fmt.Errorf("failed to write archive entry %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

// Save writes the document to a file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := d.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
