package state

import (
	"strings"

	"github.com/gomlx/exceptions"
)

// BoardKey is a comparable encoding of all the tiles of a Board, including the row
// boundaries. Two boards have the same key if and only if they have the same tiles in
// the same places, regardless of the moves that produced them.
type BoardKey string

// Board is an immutable grid of tiles. Rows may have different lengths.
//
// The derived values (key, cherry count and head position) are computed once at
// construction, since the board never changes afterward.
type Board struct {
	rows [][]Tile

	key      BoardKey
	cherries int
	head     Pos
	hasHead  bool
}

// newBoard takes ownership of rows and computes the derived values.
func newBoard(rows [][]Tile) *Board {
	b := &Board{rows: rows}
	var sb strings.Builder
	for y, row := range rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x, tile := range row {
			sb.WriteByte(byte('0' + tile))
			switch tile {
			case Cherry:
				b.cherries++
			case SnakeHead:
				if b.hasHead {
					exceptions.Panicf("board has more than one snake head: %s and %s", b.head, Pos{x, y})
				}
				b.head = Pos{x, y}
				b.hasHead = true
			}
		}
	}
	b.key = BoardKey(sb.String())
	return b
}

// Parse the puzzle text: each line is a row and each character a tile. RockRune
// denotes a rock, any other character is a cherry.
//
// Leading/trailing whitespace of the text and of each line is ignored. No validation of the
// row lengths is done here, see ParsePuzzle for that.
func Parse(text string) *Board {
	text = strings.TrimSpace(text)
	if text == "" {
		return newBoard(nil)
	}
	return ParseLines(strings.Split(text, "\n"))
}

// ParseLines is like Parse, but takes the rows already split.
func ParseLines(lines []string) *Board {
	rows := make([][]Tile, len(lines))
	for y, line := range lines {
		line = strings.TrimSpace(line)
		row := make([]Tile, 0, len(line))
		for _, r := range line {
			if r == RockRune {
				row = append(row, Rock)
			} else {
				row = append(row, Cherry)
			}
		}
		rows[y] = row
	}
	return newBoard(rows)
}

// Key returns the structural identity of the board, used to deduplicate search states.
func (b *Board) Key() BoardKey {
	return b.key
}

// Equal returns whether both boards have the same tiles in the same places.
func (b *Board) Equal(b2 *Board) bool {
	return b.key == b2.key
}

// Height is the number of rows.
func (b *Board) Height() int {
	return len(b.rows)
}

// Width of the given row. Rows may have different widths.
func (b *Board) Width(row int) int {
	return len(b.rows[row])
}

// Contains returns whether pos is inside the grid, taking into account the width of its row.
func (b *Board) Contains(pos Pos) bool {
	return pos.Y >= 0 && pos.Y < len(b.rows) && pos.X >= 0 && pos.X < len(b.rows[pos.Y])
}

// Tile at the given position. Accessing a position outside the grid is a programming error.
func (b *Board) Tile(pos Pos) Tile {
	return b.rows[pos.Y][pos.X]
}

// CherryCount returns the number of cherries not yet eaten.
func (b *Board) CherryCount() int {
	return b.cherries
}

// IsComplete returns whether all cherries were eaten.
func (b *Board) IsComplete() bool {
	return b.cherries == 0
}

// StartingPositions returns the positions holding a cherry, top to bottom and left to right.
// This is the order in which start positions are tried by the searchers.
func (b *Board) StartingPositions() []Pos {
	positions := make([]Pos, 0, b.cherries)
	for y, row := range b.rows {
		for x, tile := range row {
			if tile == Cherry {
				positions = append(positions, Pos{x, y})
			}
		}
	}
	return positions
}

// HeadPosition returns the position of the snake head, and false if it hasn't been placed yet.
func (b *Board) HeadPosition() (Pos, bool) {
	return b.head, b.hasHead
}

// WithHeadPlaced returns a new Board with the snake head placed at pos, which must hold a cherry.
func (b *Board) WithHeadPlaced(pos Pos) *Board {
	if !b.Contains(pos) || b.Tile(pos) != Cherry {
		exceptions.Panicf("can only place the snake on a cherry, position %s is not one", pos)
	}
	rows := b.cloneRows()
	rows[pos.Y][pos.X] = SnakeHead
	return newBoard(rows)
}

func (b *Board) cloneRows() [][]Tile {
	rows := make([][]Tile, len(b.rows))
	for y, row := range b.rows {
		rows[y] = append([]Tile(nil), row...)
	}
	return rows
}

// String returns the board in text form, one line per row: see TileRunes.
func (b *Board) String() string {
	var sb strings.Builder
	for y, row := range b.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, tile := range row {
			sb.WriteRune(TileRunes[tile])
		}
	}
	return sb.String()
}
