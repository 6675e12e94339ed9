package format

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"codepack/pkg/languages"
	"codepack/pkg/locator"
	"codepack/pkg/reader"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves canned results keyed by absolute path.
type fakeReader map[string]reader.Result

func (f fakeReader) Read(path string) reader.Result {
	if res, ok := f[path]; ok {
		return res
	}
	return reader.Failure(&reader.ReadIOError{Path: path, Err: errors.New("not in fake")})
}

func entry(rel string) locator.FileEntry {
	return locator.FileEntry{AbsolutePath: "/root/" + rel, RelativePath: rel}
}

func TestFormatEmpty(t *testing.T) {
	f := New(languages.Default(), fakeReader{})
	assert.Equal(t, "", f.Format(nil))
	assert.Equal(t, "", f.Format([]locator.FileEntry{}))

	report := f.Render(nil)
	assert.Zero(t, report.Files)
	assert.Empty(t, report.Failures)
}

func TestFormatSingleFile(t *testing.T) {
	f := New(languages.Default(), fakeReader{
		"/root/src/a.py": reader.Success("print(1)", "utf-8"),
	})

	got := f.Format([]locator.FileEntry{entry("src/a.py")})
	want := "**File: src/a.py**\n" +
		"**Language: Python**\n" +
		"```python\n" +
		"print(1)\n" +
		"```\n\n"
	assert.Equal(t, want, got)
}

func TestFormatScenarioWithRealReader(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/root/src/a.py", []byte("print(1)"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/root/src/b.txt", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/root/readme.md", []byte("x"), 0o644))

	table := languages.Default()
	entries, err := locator.New(table, locator.WithFs(fsys)).Scan("/root", true)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	doc := New(table, reader.New(reader.WithFs(fsys))).Format(entries)
	assert.Contains(t, doc, "**File: src/a.py**")
	assert.Contains(t, doc, "**Language: Python**")
	assert.Contains(t, doc, "```python\nprint(1)\n```")
}

func TestFormatContentVerbatim(t *testing.T) {
	content := "line1\r\nline2\n\n\ttrailing   \n"
	f := New(languages.Default(), fakeReader{
		"/root/x.js": reader.Success(content, "utf-8"),
	})

	got := f.Format([]locator.FileEntry{entry("x.js")})
	assert.Equal(t, "**File: x.js**\n**Language: JavaScript**\n```javascript\n"+content+"\n```\n\n", got)
}

func TestFormatPreservesInputOrder(t *testing.T) {
	f := New(languages.Default(), fakeReader{
		"/root/z.py": reader.Success("z", "utf-8"),
		"/root/a.py": reader.Success("a", "utf-8"),
	})

	got := f.Format([]locator.FileEntry{entry("z.py"), entry("a.py")})
	assert.Less(t, strings.Index(got, "**File: z.py**"), strings.Index(got, "**File: a.py**"))
}

func TestFormatPartialFailure(t *testing.T) {
	exhausted := &reader.DecodeExhaustedError{Path: "/root/b.json", Tried: []string{"utf-8", "ascii"}}
	f := New(languages.Default(), fakeReader{
		"/root/a.py":   reader.Success("first", "utf-8"),
		"/root/b.json": reader.Failure(exhausted),
		"/root/c.css":  reader.Success("third", "utf-8"),
	})

	entries := []locator.FileEntry{entry("a.py"), entry("b.json"), entry("c.css"), entry("d.sql")}
	report := f.Render(entries)

	assert.Equal(t, 4, report.Files)
	require.Len(t, report.Failures, 2)
	assert.Equal(t, "b.json", report.Failures[0].Entry.RelativePath)
	assert.Equal(t, "d.sql", report.Failures[1].Entry.RelativePath)

	doc := report.Text
	assert.Contains(t, doc, "```python\nfirst\n```\n\n")
	assert.Contains(t, doc, "```css\nthird\n```\n\n")
	assert.Contains(t, doc, "```json\n**Error reading file: could not decode with any of the attempted encodings (utf-8, ascii)**\n```\n\n")
	assert.Contains(t, doc, "```sql\n**Error reading file: not in fake**\n```\n\n")
	assert.Equal(t, 4, strings.Count(doc, "**File: "))
	assert.NotContains(t, doc, "/root/b.json")
}

func TestFormatErrorLineIsSingleLine(t *testing.T) {
	f := New(languages.Default(), fakeReader{
		"/root/a.py": reader.Failure(errors.New("multi\nline\r\ncause")),
	})

	got := f.Format([]locator.FileEntry{entry("a.py")})
	assert.Contains(t, got, "```python\n**Error reading file: multi line cause**\n```\n\n")
}

func TestFormatUnknownExtensionFallsBackToPlainText(t *testing.T) {
	f := New(languages.Default(), fakeReader{
		"/root/notes.txt": reader.Success("hi", "utf-8"),
	})

	got := f.Format([]locator.FileEntry{entry("notes.txt")})
	assert.Contains(t, got, "**Language: Plain Text**\n```plain text\nhi")
}

func TestFormatCustomTemplates(t *testing.T) {
	f := New(languages.Default(), fakeReader{
		"/root/a.py": reader.Success("x", "utf-8"),
	}, WithTemplates(Templates{FileHeader: "**Archivo: {path}**"}))

	got := f.Format([]locator.FileEntry{entry("a.py"), entry("gone.py")})
	assert.Contains(t, got, "**Archivo: a.py**\n**Language: Python**\n")
	assert.Contains(t, got, "**Error reading file: not in fake**")
}

func TestFormatWorkersMatchSequential(t *testing.T) {
	fake := fakeReader{}
	var entries []locator.FileEntry
	for i := 0; i < 40; i++ {
		e := entry(fmt.Sprintf("pkg%02d/file.js", i))
		entries = append(entries, e)
		if i%7 == 0 {
			continue
		}
		fake[e.AbsolutePath] = reader.Success(fmt.Sprintf("content %d", i), "utf-8")
	}

	sequential := New(languages.Default(), fake).Render(entries)
	for _, workers := range []int{0, 2, 8, 100} {
		concurrent := New(languages.Default(), fake, WithWorkers(workers)).Render(entries)
		assert.Equal(t, sequential.Text, concurrent.Text, "workers=%d", workers)
		assert.Equal(t, len(sequential.Failures), len(concurrent.Failures))
	}
}
