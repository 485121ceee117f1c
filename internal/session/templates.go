// Package session drives the interactive template-fill-export loop.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// templateExtension is the only file type offered in the menu.
const templateExtension = ".docx"

// ListTemplates returns the template files in dir, sorted by filename.
// An empty result is the session's terminal condition, not an error.
// The directory is read directly rather than globbed, so brackets and
// other pattern characters in its path stay literal.
func ListTemplates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates in %s: %w", dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateExtension) {
			continue
		}
		matches = append(matches, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(matches)
	return matches, nil
}

// DisplayName cleans a template path for menu display: the extension and the
// "[Template]_" prefix are dropped and underscores become spaces.
func DisplayName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.TrimPrefix(name, "[Template]_")
	return strings.ReplaceAll(name, "_", " ")
}

// CompanyName picks the value used to name the artifact: the first non-empty
// of the conventional company fields.
func CompanyName(values map[string]string) string {
	for _, key := range []string{"Company Name", "Company", "Employer"} {
		if values[key] != "" {
			return values[key]
		}
	}
	return ""
}
