package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/benoitkugler/boxlayout/utils/testutils/tracer"
	"github.com/benoitkugler/boxlayout/version"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// run executes the command line with args, returning stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, version.VersionString+"\n", out)
}

func TestLayoutJSON(t *testing.T) {
	input := writeInput(t, `<div style="height: 500pt"></div><div style="height: 500pt"></div>`)
	out, _, err := run(t, "", "layout", input, "--format", "json")
	require.NoError(t, err)

	var pages []tracer.Node
	require.NoError(t, json.Unmarshal([]byte(out), &pages))
	require.Len(t, pages, 2)
	assert.Equal(t, "Document", pages[0].Kind)
	assert.Equal(t, 2, pages[1].Page)
}

func TestLayoutText(t *testing.T) {
	out, _, err := run(t, "<p>hello</p>", "layout", "-", "--format", "text", "--margin", "0")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "page 1", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Document: page 1 0 0 595"))
	assert.Contains(t, out, `"hello"`)
}

func TestLayoutFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("page:\n  width: 200\n  height: 100\n  margin: 0\n"), 0o644))

	out, _, err := run(t, `<div style="height: 60pt"></div><div style="height: 60pt"></div>`,
		"layout", "-", "--config", cfgPath, "--format", "json", "--page-height", "200")
	require.NoError(t, err)
	var pages []tracer.Node
	require.NoError(t, json.Unmarshal([]byte(out), &pages))
	// both blocks fit the 200pt high page
	require.Len(t, pages, 1)
	assert.Equal(t, float32(200), pages[0].Width)
}

func TestLayoutPDF(t *testing.T) {
	input := writeInput(t, `<table><tr><td style="border: 1pt solid black">a</td><td>b</td></tr></table>`)
	output := filepath.Join(t.TempDir(), "out.pdf")
	_, _, err := run(t, "", "layout", input, "-o", output, "--outlines")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestLayoutDefaultOutput(t *testing.T) {
	input := writeInput(t, `<p>x</p>`)
	_, _, err := run(t, "", "layout", input)
	require.NoError(t, err)
	_, err = os.Stat(strings.TrimSuffix(input, ".html") + ".pdf")
	assert.NoError(t, err)
	assert.Equal(t, "out.pdf", outputName("-"))
}

func TestLayoutErrors(t *testing.T) {
	_, _, err := run(t, "", "layout", "-", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	_, _, err = run(t, "", "layout", filepath.Join(t.TempDir(), "missing.html"), "--format", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening input")

	_, _, err = run(t, `<div style="width: -3pt">x</div>`, "layout", "-", "--format", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "laying out -")

	_, _, err = run(t, "<p>x</p>", "layout", "-", "--margin", "400", "--format", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page.margin")

	_, _, err = run(t, "", "layout")
	assert.Error(t, err)
}

func TestLayoutWarningsLogged(t *testing.T) {
	_, stderr, err := run(t, `<p style="color: red">x</p>`, "layout", "-", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stderr, "ignored unsupported property")
}
