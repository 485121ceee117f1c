package filling_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/coverletter-generator/internal/docx/docxtest"
	"github.com/jonathan/coverletter-generator/internal/filling"
)

func TestScan_DistinctSortedNames(t *testing.T) {
	doc := docxtest.Open(t,
		docxtest.Para("Dear [Company Name],"),
		docxtest.Para("I would love the [Role] position at [Company Name]."),
	)

	names := filling.Scan(doc)
	assert.Equal(t, []string{"Company Name", "Role"}, names)
}

func TestScan_NoPlaceholders(t *testing.T) {
	doc := docxtest.Open(t, docxtest.Para("No fields in this paragraph."))

	names := filling.Scan(doc)
	assert.Empty(t, names)
}

func TestScan_EmptyDocument(t *testing.T) {
	doc := docxtest.Open(t)

	names := filling.Scan(doc)
	assert.Empty(t, names)
}

func TestScan_TableCells(t *testing.T) {
	doc := docxtest.Open(t,
		docxtest.Para("Summary"),
		docxtest.Table([]string{"Salary", "[Salary Expectation]"}),
	)

	names := filling.Scan(doc)
	assert.Equal(t, []string{"Salary Expectation"}, names)
}

func TestScan_NamesNeverContainClosingBracket(t *testing.T) {
	doc := docxtest.Open(t, docxtest.Para("odd [A]] and [B] then ]stray[ end"))

	names := filling.Scan(doc)
	require.NotEmpty(t, names)
	for _, name := range names {
		assert.NotContains(t, name, "]")
		assert.NotEmpty(t, name)
	}
	assert.Contains(t, names, "A")
	assert.Contains(t, names, "B")
}

func TestScan_PairsDoNotSpanParagraphs(t *testing.T) {
	doc := docxtest.Open(t,
		docxtest.Para("an opening [bracket with"),
		docxtest.Para("its closing] in the next paragraph"),
	)

	names := filling.Scan(doc)
	assert.Empty(t, names)
}

func TestScan_PlaceholderSplitAcrossRunsIsStillFound(t *testing.T) {
	// Scanning works on full paragraph text, so a token split across runs
	// is discovered even though Fill will not replace it.
	doc := docxtest.Open(t, docxtest.Para("Dear [Com", "pany],"))

	names := filling.Scan(doc)
	assert.Equal(t, []string{"Company"}, names)
}

func TestScan_CaseSensitiveNames(t *testing.T) {
	doc := docxtest.Open(t, docxtest.Para("[role] versus [Role]"))

	names := filling.Scan(doc)
	assert.Equal(t, []string{"Role", "role"}, names)
}

func TestScan_RepeatedNameReportedOnce(t *testing.T) {
	text := strings.Repeat("[Company] ", 5)
	doc := docxtest.Open(t, docxtest.Para(text))

	names := filling.Scan(doc)
	assert.Equal(t, []string{"Company"}, names)
}
