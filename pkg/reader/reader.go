// Package reader reads source files as text, falling back through an ordered
// list of encodings when a file is not valid in the preferred one.
package reader

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Result is the outcome of reading one file: either text or an error.
type Result struct {
	text     string
	encoding string
	err      error
}

// Success returns a Result holding text decoded with the named encoding.
func Success(text, encoding string) Result {
	return Result{text: text, encoding: encoding}
}

// Failure returns a Result holding err. A nil err is reported as a generic
// read failure so that a Failure is never mistaken for a Success.
func Failure(err error) Result {
	if err == nil {
		err = errors.New("read failed")
	}
	return Result{err: err}
}

// OK reports whether the read succeeded.
func (r Result) OK() bool { return r.err == nil }

// Text returns the decoded content; empty on failure.
func (r Result) Text() string { return r.text }

// Encoding returns the name of the encoding that decoded the content.
func (r Result) Encoding() string { return r.encoding }

// Err returns the failure, or nil on success.
func (r Result) Err() error { return r.err }

// ReadIOError reports a failure to read a file's bytes.
type ReadIOError struct {
	Path string
	Err  error
}

func (e *ReadIOError) Error() string {
	return fmt.Sprintf("error reading file %s: %v", e.Path, e.Err)
}

func (e *ReadIOError) Unwrap() error { return e.Err }

// Reason describes the failure without the file path.
func (e *ReadIOError) Reason() string {
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		return pathErr.Err.Error()
	}
	return e.Err.Error()
}

// DecodeExhaustedError reports that no configured encoding could decode a file.
type DecodeExhaustedError struct {
	Path  string
	Tried []string
}

func (e *DecodeExhaustedError) Error() string {
	return fmt.Sprintf("could not decode file %s with any of the attempted encodings (%s)", e.Path, strings.Join(e.Tried, ", "))
}

// Reason describes the failure without the file path.
func (e *DecodeExhaustedError) Reason() string {
	return fmt.Sprintf("could not decode with any of the attempted encodings (%s)", strings.Join(e.Tried, ", "))
}

// Reader reads files through an ordered encoding list.
type Reader struct {
	fs        afero.Fs
	encodings []Encoding
	logger    *zap.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithFs sets the filesystem to read from. The default is the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(r *Reader) { r.fs = fsys }
}

// WithEncodings sets the encodings to try, in order.
func WithEncodings(encs ...Encoding) Option {
	return func(r *Reader) { r.encodings = append([]Encoding(nil), encs...) }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) { r.logger = logger }
}

// New returns a Reader. Without WithEncodings it uses DefaultEncodings.
func New(opts ...Option) *Reader {
	r := &Reader{
		fs:     afero.NewOsFs(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.encodings) == 0 {
		r.encodings = DefaultEncodings()
	}
	return r
}

// Encodings returns the names of the configured encodings, in order.
func (r *Reader) Encodings() []string {
	names := make([]string, len(r.encodings))
	for i, enc := range r.encodings {
		names[i] = enc.Name()
	}
	return names
}

// Read returns the content of path decoded with the first encoding that
// accepts it. I/O failures are returned at once without trying encodings.
func (r *Reader) Read(path string) Result {
	raw, err := afero.ReadFile(r.fs, path)
	if err != nil {
		r.logger.Error("Failed to read file", zap.String("filePath", path), zap.Error(err))
		return Failure(&ReadIOError{Path: path, Err: err})
	}

	for _, enc := range r.encodings {
		text, err := enc.Decode(raw)
		if err == nil {
			r.logger.Debug("Successfully read file content",
				zap.String("filePath", path),
				zap.String("encoding", enc.Name()),
				zap.Int("contentSizeBytes", len(raw)))
			return Success(text, enc.Name())
		}
		if !errors.Is(err, ErrInvalidSequence) {
			r.logger.Error("Failed to decode file", zap.String("filePath", path), zap.String("encoding", enc.Name()), zap.Error(err))
			return Failure(&ReadIOError{Path: path, Err: err})
		}
		r.logger.Debug("Encoding rejected file", zap.String("filePath", path), zap.String("encoding", enc.Name()), zap.Error(err))
	}

	exhausted := &DecodeExhaustedError{Path: path, Tried: r.Encodings()}
	r.logger.Error("Could not decode file", zap.String("filePath", path), zap.Strings("encodings", exhausted.Tried))
	return Failure(exhausted)
}
