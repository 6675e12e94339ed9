// File: pkg/combine/execute.go
package combine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"codepack/pkg/format"
	"codepack/pkg/ignore"
	"codepack/pkg/languages"
	"codepack/pkg/locator"
	"codepack/pkg/reader"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Outcome summarizes a run. Files == 0 with a nil error means the directory
// held no supported files; Failures > 0 means the document carries error lines.
type Outcome struct {
	Document    string
	Files       int
	Failures    int
	Destination string
}

// Runner executes combine runs against injectable I/O.
type Runner struct {
	Fs         afero.Fs
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
	Clipboard  func(text string) error
	IsTerminal func() bool
	Logger     *zap.Logger
}

// NewRunner returns a Runner wired to the OS filesystem, standard streams
// and the system clipboard.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Fs:         afero.NewOsFs(),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Clipboard:  clipboard.WriteAll,
		IsTerminal: stdinIsTerminal,
		Logger:     logger,
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Table builds the language table for args: the defaults, then the
// languages file, then explicit extensions.
func (r *Runner) Table(args Arguments) (*languages.Table, error) {
	table := languages.Default()
	if args.LanguagesFile != "" {
		exts, err := languages.LoadFile(r.Fs, args.LanguagesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load language definitions: %w", err)
		}
		table = table.With(exts)
		r.Logger.Debug("Loaded language definitions",
			zap.String("file", args.LanguagesFile),
			zap.Int("extensions", len(exts)))
	}
	if len(args.Extensions) > 0 {
		table = table.With(args.Extensions)
	}
	return table, nil
}

// Scan lists the supported files for args. A *locator.DirectoryAccessError
// in the returned error chain means the directory could not be read.
func (r *Runner) Scan(args Arguments, table *languages.Table) ([]locator.FileEntry, error) {
	root, err := filepath.Abs(args.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	opts := []locator.Option{locator.WithFs(r.Fs), locator.WithLogger(r.Logger)}
	if args.Gitignore || len(args.Exclude) > 0 {
		m, err := ignore.Load(r.Fs, root, args.Gitignore, args.Exclude, r.Logger)
		if err != nil {
			r.Logger.Error("Failed to load ignore patterns", zap.Error(err))
			return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
		}
		opts = append(opts, locator.WithIgnore(m))
	}

	return locator.New(table, opts...).Scan(root, args.Recursive)
}

// Run scans args.Directory, formats the supported files and delivers the
// document to the configured destinations.
func (r *Runner) Run(args Arguments) (Outcome, error) {
	startTime := time.Now()
	r.Logger.Info("Starting combine process", zap.String("directory", args.Directory))

	table, err := r.Table(args)
	if err != nil {
		return Outcome{}, err
	}

	readerOpts := []reader.Option{reader.WithFs(r.Fs), reader.WithLogger(r.Logger)}
	if len(args.Encodings) > 0 {
		encs, err := reader.LookupEncodings(args.Encodings)
		if err != nil {
			return Outcome{}, fmt.Errorf("invalid encoding list: %w", err)
		}
		readerOpts = append(readerOpts, reader.WithEncodings(encs...))
	}

	entries, err := r.Scan(args, table)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to collect files: %w", err)
	}
	if len(entries) == 0 {
		r.Logger.Warn("No supported files found", zap.String("directory", args.Directory))
		return Outcome{}, nil
	}

	formatter := format.New(table, reader.New(readerOpts...),
		format.WithTemplates(args.Templates),
		format.WithWorkers(args.Workers),
		format.WithLogger(r.Logger))
	report := formatter.Render(entries)

	outcome := Outcome{
		Document: report.Text,
		Files:    report.Files,
		Failures: len(report.Failures),
	}
	if len(report.Failures) > 0 {
		errs := make([]error, len(report.Failures))
		for i, f := range report.Failures {
			errs[i] = f.Err
		}
		r.Logger.Warn("Some files could not be read",
			zap.Int("failedFiles", len(errs)),
			zap.Error(multierr.Combine(errs...)))
	}

	dest, err := r.deliver(report.Text, args)
	if err != nil {
		return outcome, err
	}
	outcome.Destination = dest

	r.Logger.Info("Successfully combined files",
		zap.Int("totalFiles", outcome.Files),
		zap.Int("failedFiles", outcome.Failures),
		zap.String("destination", dest),
		zap.Duration("elapsed", time.Since(startTime)))
	return outcome, nil
}
