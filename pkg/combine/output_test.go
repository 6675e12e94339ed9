package combine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(b)
}

func TestDeliverToFile(t *testing.T) {
	tr := newTestRunner(t, nil)

	dest, err := tr.deliver("doc", Arguments{Output: "/out/bundle.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/out/bundle.txt", dest)
	assert.Equal(t, "doc", readFile(t, tr.Fs, "/out/bundle.txt"))
	assert.Empty(t, tr.stdout.String())
}

func TestDeliverToDirectoryUsesDefaultName(t *testing.T) {
	tr := newTestRunner(t, nil)

	dest, err := tr.deliver("doc", Arguments{Output: "/proj"})
	require.NoError(t, err)
	assert.Equal(t, "/proj/"+DefaultSaveFilename, dest)
	assert.Equal(t, "doc", readFile(t, tr.Fs, dest))

	dest, err = tr.deliver("doc", Arguments{Output: "/fresh/"})
	require.NoError(t, err)
	assert.Equal(t, "/fresh/"+DefaultSaveFilename, dest)
}

func TestDeliverOverwritesWithoutTerminal(t *testing.T) {
	tr := newTestRunner(t, map[string]string{"/out.txt": "old"})

	_, err := tr.deliver("new", Arguments{Output: "/out.txt"})
	require.NoError(t, err)
	assert.Equal(t, "new", readFile(t, tr.Fs, "/out.txt"))
	assert.Empty(t, tr.stderr.String())
}

func TestDeliverPromptsBeforeOverwrite(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		force   bool
		want    string
		prompts bool
	}{
		{name: "yes", answer: "y\n", want: "new", prompts: true},
		{name: "YES without newline", answer: "YES", want: "new", prompts: true},
		{name: "no", answer: "n\n", want: "old", prompts: true},
		{name: "empty", answer: "\n", want: "old", prompts: true},
		{name: "force", force: true, want: "new"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestRunner(t, map[string]string{"/out.txt": "old"})
			tr.IsTerminal = func() bool { return true }
			tr.Stdin = strings.NewReader(tt.answer)

			dest, err := tr.deliver("new", Arguments{Output: "/out.txt", Force: tt.force})
			require.NoError(t, err)
			assert.Equal(t, tt.want, readFile(t, tr.Fs, "/out.txt"))
			if tt.want == "old" {
				assert.Empty(t, dest)
			}
			if tt.prompts {
				assert.Contains(t, tr.stderr.String(), "File /out.txt already exists. Overwrite? (y/n): ")
			} else {
				assert.Empty(t, tr.stderr.String())
			}
		})
	}
}

func TestDeliverPromptReadError(t *testing.T) {
	tr := newTestRunner(t, map[string]string{"/out.txt": "old"})
	tr.IsTerminal = func() bool { return true }
	tr.Stdin = strings.NewReader("")

	_, err := tr.deliver("new", Arguments{Output: "/out.txt"})
	assert.Error(t, err)
	assert.Equal(t, "old", readFile(t, tr.Fs, "/out.txt"))
}

func TestDeliverToClipboard(t *testing.T) {
	tr := newTestRunner(t, nil)

	dest, err := tr.deliver("doc", Arguments{Clipboard: true})
	require.NoError(t, err)
	assert.Equal(t, DestinationClipboard, dest)
	assert.Equal(t, []string{"doc"}, tr.clipboard)
	assert.Empty(t, tr.stdout.String())
}

func TestDeliverClipboardFailureFallsBackToStdout(t *testing.T) {
	tr := newTestRunner(t, nil)
	tr.Clipboard = func(string) error { return errors.New("no clipboard utilities available") }

	dest, err := tr.deliver("doc", Arguments{Clipboard: true})
	require.NoError(t, err)
	assert.Equal(t, DestinationStdout, dest)
	assert.Equal(t, "doc", tr.stdout.String())
}

func TestDeliverFileAndClipboard(t *testing.T) {
	tr := newTestRunner(t, nil)

	dest, err := tr.deliver("doc", Arguments{Output: "/out.txt", Clipboard: true})
	require.NoError(t, err)
	assert.Equal(t, "/out.txt,"+DestinationClipboard, dest)
	assert.Equal(t, "doc", readFile(t, tr.Fs, "/out.txt"))
	assert.Equal(t, []string{"doc"}, tr.clipboard)
	assert.Empty(t, tr.stdout.String())
}

func TestDeliverReadOnlyFs(t *testing.T) {
	tr := newTestRunner(t, nil)
	tr.Fs = afero.NewReadOnlyFs(tr.Fs)

	_, err := tr.deliver("doc", Arguments{Output: "/out.txt"})
	assert.Error(t, err)
}

func TestPromptUser(t *testing.T) {
	var out bytes.Buffer
	ok, err := promptUser(strings.NewReader(" Yes \n"), &out, "continue? ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "continue? ", out.String())

	ok, err = promptUser(strings.NewReader("nope\n"), &out, "")
	require.NoError(t, err)
	assert.False(t, ok)
}
