// File: pkg/combine/output.go
package combine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Destination names reported in Outcome.Destination.
const (
	DestinationStdout    = "stdout"
	DestinationClipboard = "clipboard"
)

// deliver routes the document to the output file, the clipboard, or stdout
// when neither is configured. It returns a comma-separated description of
// where the document went.
func (r *Runner) deliver(document string, args Arguments) (string, error) {
	var dests []string

	if args.Output != "" {
		path, written, err := r.writeOutputFile(args.Output, document, args.Force)
		if err != nil {
			return "", err
		}
		if written {
			dests = append(dests, path)
		}
	}

	if args.Clipboard {
		if err := r.Clipboard(document); err != nil {
			r.Logger.Warn("Error writing to clipboard, printing to stdout instead", zap.Error(err))
			if err := r.writeStdout(document); err != nil {
				return "", err
			}
			dests = append(dests, DestinationStdout)
		} else {
			r.Logger.Info("Code copied to clipboard")
			dests = append(dests, DestinationClipboard)
		}
	}

	if args.Output == "" && !args.Clipboard {
		if err := r.writeStdout(document); err != nil {
			return "", err
		}
		dests = append(dests, DestinationStdout)
	}

	return strings.Join(dests, ","), nil
}

func (r *Runner) writeStdout(document string) error {
	if _, err := io.WriteString(r.Stdout, document); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// resolveOutputPath appends DefaultSaveFilename when output names a
// directory (an existing one, or any path ending in a separator).
func (r *Runner) resolveOutputPath(output string) string {
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(os.PathSeparator)) {
		return filepath.Join(output, DefaultSaveFilename)
	}
	if isDir, err := afero.IsDir(r.Fs, output); err == nil && isDir {
		return filepath.Join(output, DefaultSaveFilename)
	}
	return output
}

// writeOutputFile writes document to output. An existing file is replaced
// when force is set or stdin is not a terminal; otherwise the user is asked.
// written is false when the user declines.
func (r *Runner) writeOutputFile(output, document string, force bool) (path string, written bool, err error) {
	path = r.resolveOutputPath(output)

	exists, err := afero.Exists(r.Fs, path)
	if err != nil {
		return path, false, fmt.Errorf("failed to check output file: %w", err)
	}
	if exists && !force && r.IsTerminal != nil && r.IsTerminal() {
		ok, err := promptUser(r.Stdin, r.Stderr, fmt.Sprintf("File %s already exists. Overwrite? (y/n): ", path))
		if err != nil {
			r.Logger.Error("Failed to read user input", zap.Error(err))
			return path, false, fmt.Errorf("failed to read user input: %w", err)
		}
		if !ok {
			r.Logger.Info("File save cancelled by user", zap.String("file", path))
			return path, false, nil
		}
	}

	if err := ensureDirectory(r.Fs, filepath.Dir(path), r.Logger); err != nil {
		return path, false, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeToFile(r.Fs, path, []byte(document), 0o644, r.Logger); err != nil {
		return path, false, fmt.Errorf("failed to write output file: %w", err)
	}
	r.Logger.Info("Saved content to file", zap.String("file", path))
	return path, true, nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(fsys afero.Fs, path string, logger *zap.Logger) error {
	if err := fsys.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(fsys afero.Fs, path string, data []byte, perm os.FileMode, logger *zap.Logger) error {
	if err := afero.WriteFile(fsys, path, data, perm); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}

// promptUser displays a message and waits for the user to enter 'y' or 'n'.
// Returns true if the user enters 'y' or 'yes' (case-insensitive), false otherwise.
func promptUser(in io.Reader, out io.Writer, message string) (bool, error) {
	fmt.Fprint(out, message)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(err == io.EOF && response != "") {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
