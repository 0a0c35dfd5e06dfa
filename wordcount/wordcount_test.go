package wordcount_test

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/forkcalc/pool"
	"github.com/exascience/forkcalc/wordcount"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

func TestCountWords(t *testing.T) {
	for _, tc := range []struct {
		text  string
		words int
	}{
		{"", 0},
		{"   \n\t ", 0},
		{"hello world", 2},
		{"hello, world! 42 -- x1", 3},
		{"one\ttwo\nthree\r\nfour", 4},
		{"3.14 2024 ... ---", 0},
		{"héllo ünïcode 日本", 2},
		{"a b", 2},
	} {
		assert.Equal(t, tc.words, wordcount.CountWords([]byte(tc.text)), "%q", tc.text)
	}
}

func TestIsBinary(t *testing.T) {
	assert.False(t, wordcount.IsBinary(nil))
	assert.False(t, wordcount.IsBinary([]byte("plain text")))
	assert.True(t, wordcount.IsBinary([]byte("ab\x00cd")))

	late := append(bytes.Repeat([]byte("a"), wordcount.BinaryProbeSize), 0)
	assert.False(t, wordcount.IsBinary(late))
	assert.True(t, wordcount.IsBinary(late[1:]))
}

func TestCountFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"notes.txt":  "alpha beta\x00 gamma",
		"data.bin":   "alpha\x00beta",
		"script.go":  "package main // words 123",
		"report.PDF": "these words are never read",
		"page.html":  "<p>hello</p>",
	})

	c, err := wordcount.CountFile(filepath.Join(root, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Words)
	assert.False(t, c.Skipped)

	c, err = wordcount.CountFile(filepath.Join(root, "script.go"))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Words)

	for _, name := range []string{"data.bin", "report.PDF", "page.html"} {
		c, err = wordcount.CountFile(filepath.Join(root, name))
		require.NoError(t, err)
		assert.True(t, c.Skipped, name)
		assert.Zero(t, c.Words, name)
	}

	_, err = wordcount.CountFile(filepath.Join(root, "missing.txt"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

var tree = map[string]string{
	"a.txt":            "the quick brown fox",
	"b.md":             "# Title\n\n1. first item here\n",
	"sub/c.log":        "INFO started 2024-01-01\nWARN slow",
	"sub/deep/d":       "no extension here",
	"sub/deep/e.bin":   "\x00\x01\x02 words",
	"sub/empty.txt":    "",
	"docs/manual.docx": "skipped entirely",
}

func TestFiles(t *testing.T) {
	root := writeTree(t, tree)
	names, err := wordcount.Files(root)
	require.NoError(t, err)
	var rel []string
	for _, name := range names {
		r, err := filepath.Rel(root, name)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{
		"a.txt", "b.md", "docs/manual.docx",
		"sub/c.log", "sub/deep/d", "sub/deep/e.bin", "sub/empty.txt",
	}, rel)
}

func TestCountDirectory(t *testing.T) {
	root := writeTree(t, tree)

	seq, err := wordcount.Count(nil, root)
	require.NoError(t, err)
	// 4 + 4 + 4 + 3
	assert.Equal(t, 15, seq.Total)
	assert.Len(t, seq.Files, len(tree))
	assert.Equal(t, 2, seq.Skipped())

	for _, opts := range [][]pool.Option{nil, {pool.WithQueueSize(1)}} {
		p := pool.New(2, opts...)
		par, err := wordcount.Count(p, root)
		p.Close()
		require.NoError(t, err)
		assert.Equal(t, seq, par)
		s := p.Stats()
		assert.EqualValues(t, len(tree), s.Submitted)
		assert.EqualValues(t, len(tree), s.Stolen+s.Helped)
	}
}

func TestCountSingleFile(t *testing.T) {
	root := writeTree(t, tree)
	p := pool.New(2)
	defer p.Close()

	s, err := wordcount.Count(p, filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Total)
	assert.Len(t, s.Files, 1)
	assert.Zero(t, p.Stats().Submitted)
}

func TestCountErrors(t *testing.T) {
	_, err := wordcount.Count(nil, filepath.Join(t.TempDir(), "nowhere"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	s, err := wordcount.Count(nil, t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, s.Total)
	assert.Empty(t, s.Files)
}

func BenchmarkCount(b *testing.B) {
	root := b.TempDir()
	line := []byte("lorem ipsum dolor sit amet 42 consectetur\n")
	for i := 0; i < 64; i++ {
		require.NoError(b, os.WriteFile(filepath.Join(root, fmt.Sprintf("f%02d.txt", i)), bytes.Repeat(line, 512), 0o600))
	}
	p := pool.New(0)
	defer p.Close()

	b.Run("Sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = wordcount.Count(nil, root)
		}
	})
	b.Run("Parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = wordcount.Count(p, root)
		}
	})
}
