// File: pkg/combine/config.go
package combine

import "codepack/pkg/format"

// DefaultSaveFilename is used when the output path names a directory.
const DefaultSaveFilename = "processed_code.txt"

// Arguments holds the configuration options for one combine run.
type Arguments struct {
	Directory     string            // Root directory to scan.
	Recursive     bool              // Walk the whole subtree instead of the top level only.
	Output        string            // Destination file; empty means no file is written.
	Clipboard     bool              // Copy the document to the system clipboard.
	Force         bool              // Overwrite an existing output file without asking.
	Workers       int               // Concurrent file readers; 1 reads sequentially, 0 uses one per CPU.
	Encodings     []string          // Encoding fallback order; empty uses the reader defaults.
	LanguagesFile string            // Optional YAML file extending the language table.
	Extensions    map[string]string // Extra extension to language mappings, applied last.
	Gitignore     bool              // Skip paths matched by the root .gitignore.
	Exclude       []string          // Extra gitignore-style patterns to skip.
	Templates     format.Templates  // Header and error line templates; empty fields use defaults.
}

// DefaultArguments returns the arguments used when nothing is configured.
func DefaultArguments() Arguments {
	return Arguments{
		Directory: ".",
		Recursive: true,
		Workers:   1,
		Templates: format.DefaultTemplates(),
	}
}
