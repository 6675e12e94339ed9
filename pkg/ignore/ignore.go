// Package ignore decides which paths a scan should skip, using gitignore
// syntax for both a root .gitignore file and ad-hoc exclude patterns.
package ignore

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// GitignoreFile is the name of the ignore file read from the scan root.
const GitignoreFile = ".gitignore"

// Matcher is a set of gitignore rule sets anchored at one root directory.
// A path is ignored when any rule set matches it.
type Matcher struct {
	root   string
	sets   []gitignore.IgnoreMatcher
	logger *zap.Logger
}

// New returns an empty matcher anchored at root. A nil logger is replaced by
// a no-op logger.
func New(root string, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{root: filepath.Clean(root), logger: logger}
}

// Load builds the matcher for a scan of root: the root .gitignore when
// useGitignore is set (a missing file is not an error), then patterns.
func Load(fsys afero.Fs, root string, useGitignore bool, patterns []string, logger *zap.Logger) (*Matcher, error) {
	m := New(root, logger)

	if useGitignore {
		err := m.CompileIgnoreFile(fsys, filepath.Join(m.root, GitignoreFile))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if len(patterns) > 0 {
		m.CompileIgnoreLines(patterns...)
		m.logger.Debug("Added command-line ignore patterns", zap.Int("count", len(patterns)))
	}
	return m, nil
}

// CompileIgnoreLines adds a rule set built from gitignore-syntax lines.
func (m *Matcher) CompileIgnoreLines(lines ...string) {
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return
	}
	src := strings.NewReader(strings.Join(kept, "\n"))
	m.sets = append(m.sets, gitignore.NewGitIgnoreFromReader(m.root, src))
}

// CompileIgnoreFile reads an ignore file from fsys and adds its rules.
func (m *Matcher) CompileIgnoreFile(fsys afero.Fs, path string) error {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	m.sets = append(m.sets, gitignore.NewGitIgnoreFromReader(m.root, bytes.NewReader(content)))
	m.logger.Debug("Compiled ignore patterns", zap.String("filePath", path))
	return nil
}

// MatchesPath reports whether path should be skipped. path may be absolute or
// relative to the matcher's root.
func (m *Matcher) MatchesPath(path string, isDir bool) bool {
	if m == nil || len(m.sets) == 0 {
		return false
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.root, filepath.FromSlash(path))
	}
	for _, set := range m.sets {
		if set.Match(path, isDir) {
			return true
		}
	}
	return false
}

// Empty reports whether the matcher has no rules.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.sets) == 0
}
