package format

import "strings"

// Templates holds the per-file header and error lines. Placeholders are
// {path}, {language} and {error}.
type Templates struct {
	FileHeader     string `mapstructure:"file_header"`
	LanguageHeader string `mapstructure:"language_header"`
	ReadError      string `mapstructure:"read_error"`
}

// DefaultTemplates returns the English templates.
func DefaultTemplates() Templates {
	return Templates{
		FileHeader:     "**File: {path}**",
		LanguageHeader: "**Language: {language}**",
		ReadError:      "**Error reading file: {error}**",
	}
}

// merged fills empty fields from the defaults.
func (t Templates) merged() Templates {
	def := DefaultTemplates()
	if t.FileHeader == "" {
		t.FileHeader = def.FileHeader
	}
	if t.LanguageHeader == "" {
		t.LanguageHeader = def.LanguageHeader
	}
	if t.ReadError == "" {
		t.ReadError = def.ReadError
	}
	return t
}

func (t Templates) fileHeader(path string) string {
	return strings.ReplaceAll(t.FileHeader, "{path}", path)
}

func (t Templates) languageHeader(language string) string {
	return strings.ReplaceAll(t.LanguageHeader, "{language}", language)
}

func (t Templates) readError(reason string) string {
	return strings.ReplaceAll(t.ReadError, "{error}", reason)
}
