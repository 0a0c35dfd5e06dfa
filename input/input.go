// Package input converts textual number lists into float64 slices for the
// forkcalc command. Every conversion failure matches
// forkcalc.ErrInvalidNumericInput, so callers can tell it apart from
// dimension errors and decide whether to abort or ask again.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/exascience/forkcalc"
)

func parse(token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", token, forkcalc.ErrInvalidNumericInput)
	}
	return v, nil
}

// ParseFields converts the whitespace-separated tokens of s. An empty or
// blank s yields an empty slice.
func ParseFields(s string) ([]float64, error) {
	fields := strings.Fields(s)
	result := make([]float64, len(fields))
	for i, field := range fields {
		v, err := parse(field)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}
		result[i] = v
	}
	return result, nil
}

// ReadLines reads one number per line from r. Surrounding whitespace is
// ignored, but blank lines are errors.
func ReadLines(r io.Reader) ([]float64, error) {
	var result []float64
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		v, err := parse(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		result = append(result, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReadFile reads one number per line from the named file, as ReadLines.
func ReadFile(name string) ([]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	result, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return result, nil
}

// Prompt writes question to w and reads lines from scanner until a
// non-blank one arrives, writing retry before every further attempt. It
// returns io.ErrUnexpectedEOF if the input ends first.
func Prompt(w io.Writer, scanner *bufio.Scanner, question, retry string) (string, error) {
	fmt.Fprintln(w, question)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
		fmt.Fprintln(w, retry)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}
