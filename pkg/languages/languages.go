// Package languages maps file extensions to the language names used in
// formatted output.
package languages

import (
	"path/filepath"
	"sort"
	"strings"
)

// PlainText is the language reported for extensions missing from a table.
const PlainText = "Plain Text"

// Table is an immutable mapping from lowercase extension (".py") to a
// human-readable language name ("Python").
type Table struct {
	byExt map[string]string
}

var defaultExtensions = map[string]string{
	".java":       "Java",
	".py":         "Python",
	".html":       "HTML",
	".htm":        "HTML",
	".js":         "JavaScript",
	".css":        "CSS",
	".xml":        "XML",
	".sql":        "SQL",
	".json":       "JSON",
	".properties": "Properties",
	".jsp":        "JSP",
}

// Default returns the table shipped with codepack.
func Default() *Table {
	return New(defaultExtensions)
}

// New builds a table from an extension map. Keys are lower-cased and given a
// leading dot when missing; empty keys or names are dropped.
func New(extensions map[string]string) *Table {
	t := &Table{byExt: make(map[string]string, len(extensions))}
	for ext, lang := range extensions {
		t.set(ext, lang)
	}
	return t
}

func (t *Table) set(ext, lang string) {
	ext = normalizeExt(ext)
	lang = strings.TrimSpace(lang)
	if ext == "" || lang == "" {
		return
	}
	t.byExt[ext] = lang
}

// With returns a copy of t extended (or overridden) by extensions.
func (t *Table) With(extensions map[string]string) *Table {
	out := &Table{byExt: make(map[string]string, len(t.byExt)+len(extensions))}
	for ext, lang := range t.byExt {
		out.byExt[ext] = lang
	}
	for ext, lang := range extensions {
		out.set(ext, lang)
	}
	return out
}

// Lookup returns the language for ext. The match is case-insensitive.
func (t *Table) Lookup(ext string) (string, bool) {
	lang, ok := t.byExt[normalizeExt(ext)]
	return lang, ok
}

// Supports reports whether the extension of path is in the table.
func (t *Table) Supports(path string) bool {
	_, ok := t.Lookup(filepath.Ext(path))
	return ok
}

// LanguageFor returns the language for path's extension, or PlainText.
func (t *Table) LanguageFor(path string) string {
	if lang, ok := t.Lookup(filepath.Ext(path)); ok {
		return lang
	}
	return PlainText
}

// Extensions returns the table's extensions in sorted order.
func (t *Table) Extensions() []string {
	exts := make([]string, 0, len(t.byExt))
	for ext := range t.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Len returns the number of extensions in the table.
func (t *Table) Len() int { return len(t.byExt) }

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
