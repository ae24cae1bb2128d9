package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yaj-editor/editor"
	"yaj-editor/internal/config"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Color = false
	var out bytes.Buffer
	sh := newShell(cfg, newSession(cfg, ""), &out)
	sh.askFile = func() (string, error) { return "", errors.New("no terminal") }
	return sh, &out
}

func feed(sh *shell, lines ...string) bool {
	for _, l := range lines {
		if sh.handle(context.Background(), l) {
			return true
		}
	}
	return false
}

func TestShellRunsBuffer(t *testing.T) {
	sh, out := newTestShell(t)

	feed(sh, "x = 1", "print x + 2")
	out.Reset()
	feed(sh, ":run")
	assert.Equal(t, "Output:\n3\n", out.String())

	out.Reset()
	feed(sh, ":vars")
	assert.Equal(t, "x = 1\n", out.String())
}

func TestShellRunWithErrors(t *testing.T) {
	sh, out := newTestShell(t)
	feed(sh, `error("oops")`, `print "after"`, ":run")
	assert.Equal(t, "Errors: \noops\n\n================\n Output:\nafter\n", out.String())
}

func TestShellPromptTracksBlocks(t *testing.T) {
	sh, _ := newTestShell(t)
	assert.Equal(t, "yaj> ", sh.prompt())

	feed(sh, "function f(a)")
	assert.Equal(t, ".... ", sh.prompt())
	feed(sh, "  if a > 1")
	assert.Equal(t, 2, sh.depth)
	feed(sh, "  end", "  return a", "end")
	assert.Equal(t, "yaj> ", sh.prompt())
}

func TestShellListAndDelete(t *testing.T) {
	sh, out := newTestShell(t)
	feed(sh, "print 1", "print 2", "print 3", ":del 2")
	assert.Equal(t, []string{"print 1", "print 3"}, sh.session.Lines())

	out.Reset()
	feed(sh, ":list")
	assert.Contains(t, out.String(), "[No File Selected]")
	assert.Contains(t, out.String(), "print 3")

	out.Reset()
	feed(sh, ":del nine")
	assert.Contains(t, out.String(), "usage: :del <line>")

	out.Reset()
	feed(sh, ":del 9")
	assert.Contains(t, out.String(), "out of range")
}

func TestShellFileCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.yaj")
	require.NoError(t, os.WriteFile(path, []byte("print \"from file\"\n"), 0644))

	sh, out := newTestShell(t)
	feed(sh, ":open "+path)
	assert.Contains(t, out.String(), "["+path+"]")
	assert.Equal(t, path, sh.session.FileName())

	feed(sh, "print \"added\"", ":save")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "print \"from file\"\nprint \"added\"\n", string(data))

	out.Reset()
	feed(sh, ":close")
	assert.Contains(t, out.String(), "["+editor.NoFileLabel+"]")
	assert.Empty(t, sh.session.Text())

	out.Reset()
	feed(sh, ":save")
	assert.Contains(t, out.String(), "nothing saved")
}

func TestShellOpenPromptsWithoutPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picked.yaj")
	require.NoError(t, os.WriteFile(path, []byte("print 1\n"), 0644))

	sh, out := newTestShell(t)
	feed(sh, ":open")
	assert.Contains(t, out.String(), "(open cancelled)")

	sh.askFile = func() (string, error) { return path, nil }
	feed(sh, ":open")
	assert.Equal(t, path, sh.session.FileName())
	assert.Equal(t, "print 1\n", sh.session.Text())
}

func TestShellOpenMissingFile(t *testing.T) {
	sh, out := newTestShell(t)
	sh.session.SetText("keep")
	feed(sh, ":open "+filepath.Join(t.TempDir(), "missing.yaj"))
	assert.Contains(t, out.String(), "missing.yaj")
	assert.Equal(t, "keep", sh.session.Text())
}

func TestShellASTAndTokens(t *testing.T) {
	sh, out := newTestShell(t)
	feed(sh, "print 1")

	out.Reset()
	feed(sh, ":ast")
	assert.Equal(t, "Program\n  Print(Number(1))\n", out.String())

	out.Reset()
	feed(sh, ":tokens")
	assert.Contains(t, out.String(), "PRINT @ 1:1")

	feed(sh, "print (")
	out.Reset()
	feed(sh, ":ast")
	assert.Contains(t, out.String(), "Syntax error")
}

func TestShellMisc(t *testing.T) {
	sh, out := newTestShell(t)

	feed(sh, ":funcs")
	assert.Contains(t, out.String(), "(no user functions)")

	out.Reset()
	feed(sh, "function g()", "end", ":run", ":funcs")
	assert.Contains(t, out.String(), "g\n")

	out.Reset()
	feed(sh, ":reset")
	assert.Empty(t, sh.session.Text())
	assert.Contains(t, out.String(), "(buffer cleared)")

	out.Reset()
	feed(sh, ":help")
	assert.Contains(t, out.String(), ":open [path]")

	out.Reset()
	feed(sh, ":bogus")
	assert.Contains(t, out.String(), "unknown command :bogus")

	assert.True(t, feed(sh, ":quit"))
	assert.True(t, feed(sh, ":q"))
}

func TestUpdateDepth(t *testing.T) {
	tests := []struct {
		depth int
		line  string
		want  int
	}{
		{0, "if x", 1},
		{0, "while true", 1},
		{0, "for i = 1 to 3", 1},
		{0, "for each x in xs", 1},
		{0, "function f()", 1},
		{1, "end", 0},
		{0, "end", 0},
		{1, "else", 1},
		{1, "# if comment", 1},
		{1, "", 1},
		{0, "print 1", 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, updateDepth(tc.depth, tc.line), tc.line)
	}

	assert.Equal(t, 1, blockDepth([]string{"if a", "  while b", "  end"}))
}
