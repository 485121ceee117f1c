package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/coverletter-generator/internal/config"
	"github.com/jonathan/coverletter-generator/internal/docx"
	"github.com/jonathan/coverletter-generator/internal/docx/docxtest"
	"github.com/jonathan/coverletter-generator/internal/export"
	"github.com/jonathan/coverletter-generator/internal/filling"
)

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
}

// captureConverter mimics soffice and keeps a copy of the intermediate
// document so tests can inspect what was actually converted.
type captureConverter struct {
	fail     bool
	captured []byte
}

func (c *captureConverter) Convert(_ context.Context, inputPath, outputDir string) (string, error) {
	if c.fail {
		return "", &export.ConversionError{Message: "converter exited with an error", LogOutput: "soffice crashed"}
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", err
	}
	c.captured = data

	base := filepath.Base(inputPath)
	pdfPath := filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0644); err != nil {
		return "", err
	}
	return pdfPath, nil
}

func newTestSession(t *testing.T, input string, conv export.Converter) (*Session, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	sess := &Session{
		Config: &config.Config{
			TemplatesDir: t.TempDir(),
			OutputDir:    t.TempDir(),
		},
		Converter: conv,
		In:        strings.NewReader(input),
		Out:       out,
		Now:       fixedNow,
	}
	return sess, out
}

func TestRun_NoTemplates(t *testing.T) {
	sess, out := newTestSession(t, "", &captureConverter{})

	err := sess.Run()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No templates found")
}

func TestRun_ExitImmediately(t *testing.T) {
	sess, out := newTestSession(t, "exit\n", &captureConverter{})
	docxtest.WriteFile(t, sess.Config.TemplatesDir, "[Template]_Generic_Letter.docx",
		docxtest.Para("Dear [Company],"))

	err := sess.Run()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Generic Letter")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_ExitIsCaseInsensitive(t *testing.T) {
	sess, out := newTestSession(t, "EXIT\n", &captureConverter{})
	docxtest.WriteFile(t, sess.Config.TemplatesDir, "letter.docx", docxtest.Para("Hi [X]"))

	require.NoError(t, sess.Run())
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_EndOfInputEndsSession(t *testing.T) {
	sess, _ := newTestSession(t, "", &captureConverter{})
	docxtest.WriteFile(t, sess.Config.TemplatesDir, "letter.docx", docxtest.Para("Hi [X]"))

	require.NoError(t, sess.Run())
}

func TestRun_InvalidMenuInput(t *testing.T) {
	sess, out := newTestSession(t, "abc\nexit\n", &captureConverter{})
	docxtest.WriteFile(t, sess.Config.TemplatesDir, "letter.docx", docxtest.Para("Hi [X]"))

	require.NoError(t, sess.Run())
	assert.Contains(t, out.String(), "Invalid input")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_OutOfRangeSelection(t *testing.T) {
	sess, out := newTestSession(t, "99\n0\nexit\n", &captureConverter{})
	docxtest.WriteFile(t, sess.Config.TemplatesDir, "letter.docx", docxtest.Para("Hi [X]"))

	require.NoError(t, sess.Run())
	assert.Contains(t, out.String(), "Invalid selection")
}

func TestRun_NoPlaceholdersSkipsFill(t *testing.T) {
	conv := &captureConverter{}
	sess, out := newTestSession(t, "1\nexit\n", conv)
	docxtest.WriteFile(t, sess.Config.TemplatesDir, "letter.docx",
		docxtest.Para("Nothing to fill here."))

	require.NoError(t, sess.Run())
	assert.Contains(t, out.String(), "No placeholders found")
	assert.Nil(t, conv.captured, "converter should never run")
}

func TestRun_ConverterFailureContinuesSession(t *testing.T) {
	sess, out := newTestSession(t, "1\nGlobex\nexit\n", &captureConverter{fail: true})
	docxtest.WriteFile(t, sess.Config.TemplatesDir, "letter.docx",
		docxtest.Para("Dear [Company],"))

	require.NoError(t, sess.Run())
	assert.Contains(t, out.String(), "Error converting to PDF")
	assert.Contains(t, out.String(), "Goodbye!")

	entries, err := os.ReadDir(sess.Config.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_EndToEnd(t *testing.T) {
	conv := &captureConverter{}
	sess, out := newTestSession(t, "1\nGlobex\nexit\n", conv)
	docxtest.WriteFile(t, sess.Config.TemplatesDir, "letter.docx",
		docxtest.Para("Dear [Company Name],"),
		docxtest.Para("Today is [Date]."),
	)

	require.NoError(t, sess.Run())

	// Artifact named from the company value and the fixed date.
	artifact := filepath.Join(sess.Config.OutputDir, "CoverLetter_Globex_2024-01-01.pdf")
	_, err := os.Stat(artifact)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), artifact)

	// The converted document has every token replaced.
	require.NotNil(t, conv.captured)
	filled, err := docx.OpenReader(bytes.NewReader(conv.captured), int64(len(conv.captured)))
	require.NoError(t, err)
	assert.Empty(t, filling.Scan(filled))
	assert.Equal(t, "Dear Globex,", filled.Paragraphs()[0].Text())
	assert.Equal(t, "Today is 2024-01-01.", filled.Paragraphs()[1].Text())
}

func TestRun_TwoTemplatesInOneSession(t *testing.T) {
	conv := &captureConverter{}
	sess, _ := newTestSession(t, "1\nGlobex\n1\nInitech\nexit\n", conv)
	docxtest.WriteFile(t, sess.Config.TemplatesDir, "letter.docx",
		docxtest.Para("Dear [Company],"))

	require.NoError(t, sess.Run())

	_, err := os.Stat(filepath.Join(sess.Config.OutputDir, "CoverLetter_Globex_2024-01-01.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(sess.Config.OutputDir, "CoverLetter_Initech_2024-01-01.pdf"))
	assert.NoError(t, err)
}

func TestListTemplates_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	docxtest.WriteFile(t, dir, "b_letter.docx", docxtest.Para("b"))
	docxtest.WriteFile(t, dir, "a_letter.docx", docxtest.Para("a"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644))

	templates, err := ListTemplates(dir)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "a_letter.docx", filepath.Base(templates[0]))
	assert.Equal(t, "b_letter.docx", filepath.Base(templates[1]))
}

func TestListTemplates_BracketsInDirectoryName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "[work] applications")
	require.NoError(t, os.Mkdir(dir, 0755))
	docxtest.WriteFile(t, dir, "letter.docx", docxtest.Para("Hello"))

	templates, err := ListTemplates(dir)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "letter.docx", filepath.Base(templates[0]))
}

func TestListTemplates_MissingDir(t *testing.T) {
	_, err := ListTemplates(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list templates")
}

func TestListTemplates_SkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts.docx"), 0755))
	docxtest.WriteFile(t, dir, "letter.docx", docxtest.Para("Hello"))

	templates, err := ListTemplates(dir)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "letter.docx", filepath.Base(templates[0]))
}

func TestListTemplates_EmptyDir(t *testing.T) {
	templates, err := ListTemplates(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Generic Cover Letter", DisplayName("/x/[Template]_Generic_Cover_Letter.docx"))
	assert.Equal(t, "plain", DisplayName("plain.docx"))
	assert.Equal(t, "two words", DisplayName("two_words.docx"))
}

func TestCompanyName_Fallbacks(t *testing.T) {
	assert.Equal(t, "A", CompanyName(map[string]string{"Company Name": "A", "Company": "B"}))
	assert.Equal(t, "B", CompanyName(map[string]string{"Company": "B", "Employer": "C"}))
	assert.Equal(t, "C", CompanyName(map[string]string{"Employer": "C"}))
	assert.Equal(t, "", CompanyName(map[string]string{"Role": "Engineer"}))
}
