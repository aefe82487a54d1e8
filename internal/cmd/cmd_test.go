package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/document"
	"github.com/iw2rmb/inkwell/internal/config"
)

// run executes the root command with a config path that does not exist, so
// the user's own settings never leak into tests.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := Root()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "inkwell version "+inkwell.Version()), "got %q", out)
}

func TestFmt(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, "<p><b>a</b><b>b</b><span>c</span></p>", "fmt")
		require.NoError(t, err)
		assert.Equal(t, "<p><strong>ab</strong>c</p>\n", out)
	})

	t.Run("diff", func(t *testing.T) {
		out, err := run(t, "<p><b>a</b></p>", "fmt", "--diff")
		require.NoError(t, err)
		assert.Contains(t, out, "[-")
		assert.Contains(t, out, "{+")
	})

	t.Run("diff canonical input", func(t *testing.T) {
		out, err := run(t, "<p><strong>a</strong></p>", "fmt", "--diff")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("write", func(t *testing.T) {
		path := writeTemp(t, "doc.html", "<p><i>x</i></p>")
		out, err := run(t, "", "fmt", "-w", path)
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<p><em>x</em></p>", string(data))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := run(t, "<p>x", "fmt")
		require.Error(t, err)
		assert.ErrorIs(t, err, document.ErrMalformedMarkup)
	})
}

func TestCheck(t *testing.T) {
	good := writeTemp(t, "good.html", "<p>ok</p>")
	bad := writeTemp(t, "bad.html", "<p><p>nested</p></p>")

	out, err := run(t, "", "check", good, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, err.Error(), "1 of 2 files")
	assert.Contains(t, out, "ok   "+good+"\n")
	assert.Contains(t, out, "FAIL "+bad+": ")
	assert.NotContains(t, out, "\x1b[", "output to a buffer must not be colored")

	_, err = run(t, "", "check", good)
	require.NoError(t, err)
}

func TestImport(t *testing.T) {
	src := "# Title\n\nSome **bold** and *it* and ~~gone~~ `code`.\n\n![alt](x.png)\n"

	out, err := run(t, src, "import")
	require.NoError(t, err)
	want := `<p>Title</p><p>Some <strong>bold</strong> and <em>it</em> and <s>gone</s> <code>code</code>.</p><img src="x.png" data-flow="inline">` + "\n"
	assert.Equal(t, want, out)

	path := filepath.Join(t.TempDir(), "out.html")
	_, err = run(t, "- one\n- two\n", "import", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>one</p><p>two</p>", string(data))
}

func TestImport_EmptyInput(t *testing.T) {
	doc, err := importMarkdown(nil)
	require.NoError(t, err)
	assert.True(t, doc.IsEmpty())
	assert.Equal(t, 1, doc.Len())
}

func TestRoot_InvalidConfig(t *testing.T) {
	path := writeTemp(t, "config.toml", "history_limit = -5\n")

	root := Root()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "version"})
	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
