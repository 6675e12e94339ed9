// Package locator discovers the supported source files under a directory.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"codepack/pkg/ignore"
	"codepack/pkg/languages"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileEntry identifies one discovered file.
type FileEntry struct {
	// Absolute filesystem path, used for reading.
	AbsolutePath string
	// Path relative to the scan root with forward slashes (e.g. "src/a.py").
	// It is the sort key and the name shown in formatted output.
	RelativePath string
}

// DirectoryAccessError reports that the scan root could not be listed.
type DirectoryAccessError struct {
	Root string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("cannot access directory %s: %v", e.Root, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

var errNotDir = errors.New("not a directory")

// Locator scans directories for files whose extension is in a language table.
type Locator struct {
	fs     afero.Fs
	table  *languages.Table
	ignore *ignore.Matcher
	logger *zap.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithFs sets the filesystem to scan. The default is the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(l *Locator) { l.fs = fsys }
}

// WithIgnore sets a matcher whose matches are skipped during the scan.
func WithIgnore(m *ignore.Matcher) Option {
	return func(l *Locator) { l.ignore = m }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Locator) { l.logger = logger }
}

// New returns a Locator filtering by table.
func New(table *languages.Table, opts ...Option) *Locator {
	l := &Locator{
		fs:     afero.NewOsFs(),
		table:  table,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.table == nil {
		l.table = languages.Default()
	}
	return l
}

// Scan returns the supported files under root, sorted by relative path.
// With recursive unset only the top level of root is listed.
//
// Any failure to list root or a directory below it yields a nil slice and a
// *DirectoryAccessError; partial listings are never returned.
func (l *Locator) Scan(root string, recursive bool) ([]FileEntry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, l.fail(root, err)
	}
	absRoot = filepath.Clean(absRoot)
	l.logger.Info("Listing files in directory", zap.String("directory", absRoot), zap.Bool("recursive", recursive))

	info, err := l.fs.Stat(absRoot)
	if err != nil {
		return nil, l.fail(absRoot, err)
	}
	if !info.IsDir() {
		return nil, l.fail(absRoot, errNotDir)
	}

	var entries []FileEntry
	if recursive {
		entries, err = l.walk(absRoot)
	} else {
		entries, err = l.list(absRoot)
	}
	if err != nil {
		return nil, l.fail(absRoot, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelativePath < entries[j].RelativePath
	})
	l.logger.Info("Found supported files", zap.Int("count", len(entries)))
	return entries, nil
}

func (l *Locator) walk(absRoot string) ([]FileEntry, error) {
	var entries []FileEntry
	err := afero.Walk(l.fs, absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == absRoot {
			return nil
		}
		if l.ignore.MatchesPath(path, info.IsDir()) {
			l.logger.Debug("Skipping ignored path", zap.String("path", path))
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if entry, ok := l.keep(absRoot, path); ok {
			entries = append(entries, entry)
		}
		return nil
	})
	return entries, err
}

func (l *Locator) list(absRoot string) ([]FileEntry, error) {
	infos, err := afero.ReadDir(l.fs, absRoot)
	if err != nil {
		return nil, err
	}
	var entries []FileEntry
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		path := filepath.Join(absRoot, info.Name())
		if l.ignore.MatchesPath(path, false) {
			continue
		}
		if entry, ok := l.keep(absRoot, path); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (l *Locator) keep(absRoot, path string) (FileEntry, bool) {
	if !l.table.Supports(path) {
		return FileEntry{}, false
	}
	rel, _ := filepath.Rel(absRoot, path)
	entry := FileEntry{AbsolutePath: path, RelativePath: filepath.ToSlash(rel)}
	l.logger.Debug("Added file", zap.String("file", entry.RelativePath))
	return entry, true
}

func (l *Locator) fail(root string, err error) error {
	l.logger.Error("Error processing directory", zap.String("directory", root), zap.Error(err))
	return &DirectoryAccessError{Root: root, Err: err}
}
