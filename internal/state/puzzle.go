package state

import (
	"strings"

	"github.com/pkg/errors"
)

// NormalizePuzzle splits the puzzle text into trimmed rows, dropping blank lines, and checks
// all rows have the same width. It fails on puzzles without any rows.
func NormalizePuzzle(text string) ([]string, error) {
	var rows []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty puzzle")
	}
	width := len([]rune(rows[0]))
	for y, row := range rows[1:] {
		if w := len([]rune(row)); w != width {
			return nil, errors.Errorf("inconsistent grid width at row %d: expected %d, got %d", y+2, width, w)
		}
	}
	return rows, nil
}

// ParsePuzzle is a strict version of Parse: it rejects empty and ragged puzzles.
func ParsePuzzle(text string) (*Board, error) {
	rows, err := NormalizePuzzle(text)
	if err != nil {
		return nil, err
	}
	return ParseLines(rows), nil
}
