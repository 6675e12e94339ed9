// Package format turns a list of discovered files into one annotated text
// document with a fenced, language-tagged block per file.
package format

import (
	"errors"
	"strings"

	"codepack/pkg/languages"
	"codepack/pkg/locator"
	"codepack/pkg/reader"

	"go.uber.org/zap"
)

// ContentReader reads a single file.
type ContentReader interface {
	Read(path string) reader.Result
}

// Failure records a file whose content was replaced by an error line.
type Failure struct {
	Entry locator.FileEntry
	Err   error
}

// Report is the outcome of formatting a file list.
type Report struct {
	// Text is the formatted document; empty when there were no files.
	Text     string
	Files    int
	Failures []Failure
}

// Formatter renders file lists. It holds no state between calls.
type Formatter struct {
	table     *languages.Table
	reader    ContentReader
	templates Templates
	workers   int
	logger    *zap.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithTemplates overrides the header and error templates. Empty fields keep
// their defaults.
func WithTemplates(t Templates) Option {
	return func(f *Formatter) { f.templates = t.merged() }
}

// WithWorkers reads files with n concurrent workers. n <= 0 means one worker
// per CPU. Output is identical to the sequential case.
func WithWorkers(n int) Option {
	return func(f *Formatter) { f.workers = n }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Formatter) { f.logger = logger }
}

// New returns a Formatter resolving languages through table and reading
// files through r.
func New(table *languages.Table, r ContentReader, opts ...Option) *Formatter {
	f := &Formatter{
		table:     table,
		reader:    r,
		templates: DefaultTemplates(),
		workers:   1,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.table == nil {
		f.table = languages.Default()
	}
	return f
}

// Format returns the document for entries, in the order given. An empty
// list yields the empty string.
func (f *Formatter) Format(entries []locator.FileEntry) string {
	return f.Render(entries).Text
}

// Render formats entries and reports which files could not be read. A read
// failure replaces that file's content with an error line and never stops
// the remaining files.
func (f *Formatter) Render(entries []locator.FileEntry) Report {
	if len(entries) == 0 {
		f.logger.Warn("No files to format")
		return Report{}
	}
	f.logger.Info("Formatting files", zap.Int("count", len(entries)))

	results := f.readAll(entries)

	var sb strings.Builder
	report := Report{Files: len(entries)}
	for i, entry := range entries {
		language := f.table.LanguageFor(entry.RelativePath)

		sb.WriteString(f.templates.fileHeader(entry.RelativePath))
		sb.WriteByte('\n')
		sb.WriteString(f.templates.languageHeader(language))
		sb.WriteByte('\n')
		sb.WriteString("```")
		sb.WriteString(strings.ToLower(language))
		sb.WriteByte('\n')

		res := results[i]
		if res.OK() {
			sb.WriteString(res.Text())
		} else {
			f.logger.Warn("Error reading file", zap.String("file", entry.RelativePath), zap.Error(res.Err()))
			sb.WriteString(f.templates.readError(reason(res.Err())))
			report.Failures = append(report.Failures, Failure{Entry: entry, Err: res.Err()})
		}

		sb.WriteString("\n```\n\n")
	}

	report.Text = sb.String()
	return report
}

// reason returns a single-line, path-free description of err when the error
// offers one.
func reason(err error) string {
	var r interface{ Reason() string }
	msg := err.Error()
	if errors.As(err, &r) {
		msg = r.Reason()
	}
	return strings.Join(strings.Fields(msg), " ")
}
