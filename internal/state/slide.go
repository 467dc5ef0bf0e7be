package state

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Move is the result of issuing one direction command to the snake.
type Move struct {
	Direction Direction

	// Board after the slide.
	Board *Board

	// Cells the snake moved (and cherries it ate). It is 0 for a blocked direction.
	Cells int
}

// Slide the snake head in the given direction: it keeps moving, eating one cherry per cell,
// until the next cell is off-grid, a rock or part of its own body.
//
// If the snake is blocked right away, it returns the receiver itself and cells == 0.
//
// It panics if the snake hasn't been placed yet.
func (b *Board) Slide(dir Direction) (next *Board, cells int) {
	head, found := b.HeadPosition()
	if !found {
		exceptions.Panicf("can't slide %s before the snake is placed", dir)
	}

	var rows [][]Tile // Cloned lazily, on the first cherry eaten.
	for {
		target := head.Step(dir)
		if !b.Contains(target) {
			break
		}
		tile := b.Tile(target)
		if rows != nil {
			tile = rows[target.Y][target.X]
		}
		if tile == Rock || tile == SnakeBody {
			break
		}
		if tile == SnakeHead {
			exceptions.Panicf("snake head at %s sliding %s found a second head at %s", head, dir, target)
		}

		// Cherry: eat it and keep going.
		if rows == nil {
			rows = b.cloneRows()
		}
		rows[head.Y][head.X] = SnakeBody
		rows[target.Y][target.X] = SnakeHead
		head = target
		cells++
	}

	if cells == 0 {
		return b, 0
	}
	return newBoard(rows), cells
}

// Moves returns the boards reachable by one direction command, in the order of Directions.
// Blocked directions (that wouldn't change the board) are not included, so it returns from 0
// to 4 moves.
func (b *Board) Moves() []Move {
	moves := make([]Move, 0, len(Directions))
	for _, dir := range Directions {
		next, cells := b.Slide(dir)
		if cells == 0 {
			continue
		}
		moves = append(moves, Move{Direction: dir, Board: next, Cells: cells})
	}
	return moves
}

// AllMoves is like Moves, but it includes blocked directions, whose Board is the receiver
// itself. It always returns 4 moves.
func (b *Board) AllMoves() []Move {
	moves := make([]Move, 0, len(Directions))
	for _, dir := range Directions {
		next, cells := b.Slide(dir)
		moves = append(moves, Move{Direction: dir, Board: next, Cells: cells})
	}
	return moves
}

// Replay places the snake on start and slides it in each of the directions in turn,
// returning the final board.
//
// It returns an error if start doesn't hold a cherry, or if any of the directions is blocked,
// since a solution never includes a command that doesn't move the snake.
func Replay(b *Board, start Pos, directions []Direction) (*Board, error) {
	if !b.Contains(start) {
		return nil, errors.Errorf("start position %s is outside of the board", start)
	}
	if tile := b.Tile(start); tile != Cherry {
		return nil, errors.Errorf("start position %s holds a %s, the snake can only start on a cherry", start, tile)
	}
	b = b.WithHeadPlaced(start)
	for ii, dir := range directions {
		var cells int
		b, cells = b.Slide(dir)
		if cells == 0 {
			head, _ := b.HeadPosition()
			return nil, errors.Errorf("move #%d (%s) is blocked at %s", ii+1, dir, head)
		}
	}
	return b, nil
}
