/*
Package wordcount counts the words in a file or in every file below a
directory, one pool task per file.

A word is a whitespace-separated token that contains at least one ASCII
letter, so numbers and punctuation on their own are not counted.

Only plain text is read. Files whose first BinaryProbeSize bytes contain
a NUL byte are treated as binary and skipped, as are documents that need
a format-specific extractor (PDF, DOCX, HTML and images).
*/
package wordcount

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/exascience/forkcalc/pool"
)

// BinaryProbeSize is the number of leading bytes inspected by IsBinary.
const BinaryProbeSize = 1024

var (
	textExtensions = map[string]bool{".txt": true, ".md": true}

	extractorExtensions = map[string]bool{
		".pdf": true, ".docx": true,
		".html": true, ".htm": true,
		".png": true, ".jpg": true, ".jpeg": true,
	}
)

// A FileCount is the number of words found in a single file.
type FileCount struct {
	Path  string
	Words int
	// Skipped is set for binary files and documents that are not read.
	Skipped bool
}

// A Summary holds the per-file counts of a run, in lexical path order, and
// their total.
type Summary struct {
	Files []FileCount
	Total int
}

// Skipped returns the number of files that were not read.
func (s Summary) Skipped() (n int) {
	for _, f := range s.Files {
		if f.Skipped {
			n++
		}
	}
	return
}

func isWord(token []byte) bool {
	for _, b := range token {
		if ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') {
			return true
		}
	}
	return false
}

// CountWords returns the number of words in text.
func CountWords(text []byte) (n int) {
	for _, token := range bytes.Fields(text) {
		if isWord(token) {
			n++
		}
	}
	return
}

// IsBinary reports whether the first BinaryProbeSize bytes of data contain
// a NUL byte.
func IsBinary(data []byte) bool {
	if len(data) > BinaryProbeSize {
		data = data[:BinaryProbeSize]
	}
	return bytes.IndexByte(data, 0) >= 0
}

// CountFile counts the words in the named file.
func CountFile(name string) (FileCount, error) {
	result := FileCount{Path: name}
	ext := strings.ToLower(filepath.Ext(name))
	if extractorExtensions[ext] {
		result.Skipped = true
		return result, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return result, fmt.Errorf("count words: %w", err)
	}
	if !textExtensions[ext] && IsBinary(data) {
		result.Skipped = true
		return result, nil
	}
	result.Words = CountWords(data)
	return result, nil
}

// Files returns the regular files below root in lexical order.
func Files(root string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return names, nil
}

/*
Count counts the words in path. If path is a regular file, it is counted
on the calling goroutine. If path is a directory, one task per file
below it is submitted to p, and Count waits for all of them before
returning. If p is nil, the files are counted sequentially.

Each task writes only its own entry of the result. Count returns the
error of the first failing file in lexical order, after every task has
terminated.
*/
func Count(p *pool.Pool, path string) (Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Summary{}, fmt.Errorf("count words: %w", err)
	}
	if !info.IsDir() {
		c, err := CountFile(path)
		if err != nil {
			return Summary{}, err
		}
		return Summary{Files: []FileCount{c}, Total: c.Words}, nil
	}

	names, err := Files(path)
	if err != nil {
		return Summary{}, err
	}
	counts := make([]FileCount, len(names))
	errs := make([]error, len(names))
	if p == nil {
		for i, name := range names {
			counts[i], errs[i] = CountFile(name)
		}
	} else {
		futures := make([]*pool.Future, len(names))
		for i, name := range names {
			futures[i] = p.Submit(func() (err error) {
				counts[i], err = CountFile(name)
				return
			})
		}
		for i, f := range futures {
			errs[i] = p.Await(f)
		}
	}

	s := Summary{Files: counts}
	for i, c := range counts {
		if errs[i] != nil {
			return Summary{}, errs[i]
		}
		s.Total += c.Words
	}
	return s, nil
}
