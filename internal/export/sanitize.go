// Package export converts filled documents to PDF artifacts.
package export

import "strings"

// invalidFilenameChars are stripped from company names before they are used
// in artifact filenames. Characters outside this set, including Unicode,
// pass through unchanged.
const invalidFilenameChars = `<>:"/\|?*`

// fallbackCompanyName is used when sanitization leaves nothing behind.
const fallbackCompanyName = "Unknown"

// SanitizeFilename strips filename-invalid characters and surrounding
// whitespace. An empty or entirely-invalid input yields "Unknown".
func SanitizeFilename(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if !strings.ContainsRune(invalidFilenameChars, r) {
			sb.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(sb.String())
	if cleaned == "" {
		return fallbackCompanyName
	}
	return cleaned
}
