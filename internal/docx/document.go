// Package docx reads and writes Word (.docx) documents at the text-run level.
package docx

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// tokenKind identifies the type of a preserved XML token
type tokenKind int

const (
	tokStart tokenKind = iota
	tokEnd
	tokChar
	tokComment
	tokProcInst
	tokDirective
)

// token is one XML token from word/document.xml, kept in raw (unexpanded) form
// so the document can be written back without disturbing namespaces or markup.
type token struct {
	kind   tokenKind
	name   xml.Name // element name; Space holds the prefix as written (e.g. "w")
	attrs  []xml.Attr
	text   string // character data, comment body, or directive body
	target string // processing instruction target
}

// Paragraph is a w:p element. Paragraphs inside table cells appear here too,
// in document order, so one walk covers body text and every table cell.
type Paragraph struct {
	runs []*Run
}

// Runs returns the paragraph's formatting runs in document order.
func (p *Paragraph) Runs() []*Run {
	return p.runs
}

// Text returns the concatenated text of all runs in the paragraph.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.runs {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// textRef locates one w:t element: its start tag and its character payload.
type textRef struct {
	start int
	char  int
}

// Run is a w:r element, the smallest unit of uniformly formatted text.
// Mutating a run's text leaves its properties (w:rPr) untouched.
type Run struct {
	doc  *Document
	refs []textRef
}

// Text returns the run's text content (the concatenated w:t payloads).
func (r *Run) Text() string {
	if len(r.refs) == 1 {
		return r.doc.tokens[r.refs[0].char].text
	}
	var sb strings.Builder
	for _, ref := range r.refs {
		sb.WriteString(r.doc.tokens[ref.char].text)
	}
	return sb.String()
}

// SetText replaces the run's text content. The new text goes into the first
// w:t element; any further w:t elements are emptied. Runs without a w:t
// (tabs, breaks, drawings) are left alone.
func (r *Run) SetText(text string) {
	if len(r.refs) == 0 {
		return
	}
	first := r.refs[0]
	r.doc.tokens[first.char].text = text
	if text != strings.TrimSpace(text) {
		setSpacePreserve(&r.doc.tokens[first.start])
	}
	for _, ref := range r.refs[1:] {
		r.doc.tokens[ref.char].text = ""
	}
}

// setSpacePreserve marks a w:t start tag with xml:space="preserve" so Word
// does not strip significant leading or trailing whitespace.
func setSpacePreserve(tok *token) {
	for i, a := range tok.attrs {
		if a.Name.Space == "xml" && a.Name.Local == "space" {
			tok.attrs[i].Value = "preserve"
			return
		}
	}
	tok.attrs = append(tok.attrs, xml.Attr{
		Name:  xml.Name{Space: "xml", Local: "space"},
		Value: "preserve",
	})
}

// isW reports whether a raw name is a wordprocessingml element with the
// conventional "w" prefix, which every producer of document.xml uses.
func isW(name xml.Name, local string) bool {
	return name.Space == "w" && name.Local == local
}

// parseDocumentXML tokenizes document.xml and indexes its paragraphs and runs.
// Raw tokens are kept verbatim so serialization is lossless for everything we
// do not touch.
func parseDocumentXML(data []byte) ([]token, []*Paragraph, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var tokens []token
	var paras []*Paragraph
	var paraStack []*Paragraph
	var run *Run

	inText := false
	textStart := -1
	var textBuf strings.Builder

	for {
		raw, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &FormatError{Message: "malformed word/document.xml", Cause: err}
		}

		switch t := raw.(type) {
		case xml.StartElement:
			attrs := make([]xml.Attr, len(t.Attr))
			copy(attrs, t.Attr)
			tokens = append(tokens, token{kind: tokStart, name: t.Name, attrs: attrs})

			switch {
			case isW(t.Name, "p"):
				para := &Paragraph{}
				paras = append(paras, para)
				paraStack = append(paraStack, para)
			case isW(t.Name, "r") && len(paraStack) > 0 && run == nil:
				run = &Run{}
				cur := paraStack[len(paraStack)-1]
				cur.runs = append(cur.runs, run)
			case isW(t.Name, "t") && run != nil && !inText:
				inText = true
				textStart = len(tokens) - 1
				textBuf.Reset()
			}

		case xml.EndElement:
			if inText && isW(t.Name, "t") {
				// Collapse the element's character data into a single
				// token placed just before the closing tag, so every
				// w:t has exactly one mutable payload.
				tokens = append(tokens, token{kind: tokChar, text: textBuf.String()})
				run.refs = append(run.refs, textRef{start: textStart, char: len(tokens) - 1})
				inText = false
			}
			tokens = append(tokens, token{kind: tokEnd, name: t.Name})

			switch {
			case isW(t.Name, "p") && len(paraStack) > 0:
				paraStack = paraStack[:len(paraStack)-1]
			case isW(t.Name, "r"):
				run = nil
			}

		case xml.CharData:
			if inText {
				textBuf.Write(t)
			} else {
				tokens = append(tokens, token{kind: tokChar, text: string(t)})
			}

		case xml.Comment:
			tokens = append(tokens, token{kind: tokComment, text: string(t)})

		case xml.ProcInst:
			tokens = append(tokens, token{kind: tokProcInst, target: t.Target, text: string(t.Inst)})

		case xml.Directive:
			tokens = append(tokens, token{kind: tokDirective, text: string(t)})
		}
	}

	return tokens, paras, nil
}

// qualified renders a raw XML name back to its source form.
func qualified(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

// writeTokens serializes the token stream back to XML.
func writeTokens(w io.Writer, tokens []token) error {
	bw := bufio.NewWriter(w)
	for _, tok := range tokens {
		switch tok.kind {
		case tokProcInst:
			bw.WriteString("<?")
			bw.WriteString(tok.target)
			bw.WriteByte(' ')
			bw.WriteString(tok.text)
			bw.WriteString("?>")
		case tokStart:
			bw.WriteByte('<')
			bw.WriteString(qualified(tok.name))
			for _, a := range tok.attrs {
				bw.WriteByte(' ')
				bw.WriteString(qualified(a.Name))
				bw.WriteString(`="`)
				_ = xml.EscapeText(bw, []byte(a.Value))
				bw.WriteByte('"')
			}
			bw.WriteByte('>')
		case tokEnd:
			bw.WriteString("</")
			bw.WriteString(qualified(tok.name))
			bw.WriteByte('>')
		case tokChar:
			_ = xml.EscapeText(bw, []byte(tok.text))
		case tokComment:
			bw.WriteString("<!--")
			bw.WriteString(tok.text)
			bw.WriteString("-->")
		case tokDirective:
			bw.WriteString("<!")
			bw.WriteString(tok.text)
			bw.WriteByte('>')
		}
	}
	return bw.Flush()
}
