// Package filling discovers and substitutes [Placeholder] fields in documents.
package filling

import (
	"regexp"
	"sort"

	"github.com/jonathan/coverletter-generator/internal/docx"
)

// placeholderPattern matches a bracketed field name. Names never contain a
// closing bracket; matching is paragraph-local, so a pair never spans
// paragraphs.
var placeholderPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// Scan returns the alphabetically sorted set of distinct placeholder names
// found anywhere in the document's readable text, including table cells.
// A document without placeholders yields an empty result; that is not an
// error, it just means there is nothing to fill.
func Scan(doc *docx.Document) []string {
	seen := make(map[string]bool)
	var names []string

	for _, para := range doc.Paragraphs() {
		for _, match := range placeholderPattern.FindAllStringSubmatch(para.Text(), -1) {
			name := match[1]
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	sort.Strings(names)
	return names
}
