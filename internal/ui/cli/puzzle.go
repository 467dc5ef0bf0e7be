package cli

import (
	"io"
	"strings"

	. "github.com/janpfeifer/snakeGo/internal/state"
	"github.com/pkg/errors"
)

// ReadPuzzleText reads the puzzle text from r and returns it normalized: one row per line,
// without blank lines or whitespace around the rows.
//
// It fails on puzzles without rows and on ragged grids (rows with different widths).
func ReadPuzzleText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "failed to read puzzle")
	}
	rows, err := NormalizePuzzle(string(data))
	if err != nil {
		return "", err
	}
	return strings.Join(rows, "\n"), nil
}

// ReadPuzzle reads the puzzle text from r and parses it into a Board.
//
// Blank lines and whitespace around the grid and around each row are ignored. Unlike
// state.Parse, it rejects puzzles without rows and ragged grids (rows with different widths).
func ReadPuzzle(r io.Reader) (*Board, error) {
	text, err := ReadPuzzleText(r)
	if err != nil {
		return nil, err
	}
	return Parse(text), nil
}
