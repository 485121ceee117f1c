// Package filling discovers and substitutes [Placeholder] fields in documents.
package filling

import (
	"sort"
	"strings"

	"github.com/jonathan/coverletter-generator/internal/docx"
)

// Values maps placeholder names to their substitution text for one session.
type Values map[string]string

// Fill replaces every occurrence of [Name] with its value, for every name in
// values, across all paragraphs and table cells. Names are applied in sorted
// order, so a value that itself contains another name's token is handled the
// same way on every run. Replacement happens only when the full bracketed
// token sits inside a single formatting run; a token split across runs by
// prior formatting edits is left as-is. Names that never occur in the
// document are silently skipped.
func Fill(doc *docx.Document, values Values) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, para := range doc.Paragraphs() {
		fillParagraph(para, names, values)
	}
}

// fillParagraph rewrites one paragraph's runs in place. The full-text prescan
// skips paragraphs with no bracket pattern at all.
func fillParagraph(para *docx.Paragraph, names []string, values Values) {
	if !placeholderPattern.MatchString(para.Text()) {
		return
	}

	for _, run := range para.Runs() {
		text := run.Text()
		replaced := false
		for _, name := range names {
			token := "[" + name + "]"
			if strings.Contains(text, token) {
				text = strings.ReplaceAll(text, token, values[name])
				replaced = true
			}
		}
		if replaced {
			run.SetText(text)
		}
	}
}
