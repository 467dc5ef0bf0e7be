// Package state holds the puzzle board of the sliding snake game and its movement rules.
//
// A Board is an immutable grid of tiles: every transition (placing the snake head,
// sliding it in a direction) returns a new Board. Two boards with the same tiles in the
// same places are the same state, see Board.Key.
package state

import (
	"fmt"
)

var _ = fmt.Print

// Tile is the content of one cell of the grid. There is no empty floor: every cell
// that is not a rock starts as a cherry, and once the snake passes over it, it becomes
// part of the snake.
type Tile uint8

const (
	Rock Tile = iota
	Cherry
	SnakeBody
	SnakeHead
)

//go:generate go tool enumer -type=Tile -output=tile_enumer.go state.go

// Runes used when parsing and printing boards.
const (
	// RockRune is the only reserved character in a puzzle: anything else is parsed as a cherry.
	RockRune = 'r'

	CherryRune    = 'c'
	SnakeBodyRune = '#'
	SnakeHeadRune = '@'
)

// TileRunes maps each Tile to the rune used by Board.String.
var TileRunes = [...]rune{Rock: RockRune, Cherry: CherryRune, SnakeBody: SnakeBodyRune, SnakeHead: SnakeHeadRune}

// Direction of a slide of the snake.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

//go:generate go tool enumer -type=Direction -text -json -output=direction_enumer.go state.go

// Directions enumerates the directions in the order moves are generated.
// This order determines which of the equally short solutions is found.
var Directions = [4]Direction{Up, Down, Right, Left}

// Delta returns the unit step (dx, dy) of the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Pos is a position in the grid: X is the column and Y is the row, both starting at 0.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the position one unit away in the given direction. It may be off-grid.
func (pos Pos) Step(d Direction) Pos {
	dx, dy := d.Delta()
	return Pos{pos.X + dx, pos.Y + dy}
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos.X, pos.Y)
}
