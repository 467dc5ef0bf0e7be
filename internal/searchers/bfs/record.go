package bfs

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/snakeGo/internal/searchers"
	. "github.com/janpfeifer/snakeGo/internal/state"
)

// parentKind tags the variant held by parent.
type parentKind uint8

const (
	parentBoard parentKind = iota
	parentRoot
)

// parent is the predecessor of a board in the search: either the board where the direction
// command was issued, or the root marker holding the start position where the snake was placed.
type parent struct {
	kind  parentKind
	board *Board
	start Pos
}

// record maps every board visited in a run to its parent. It is used both to deduplicate boards
// (structurally, by Board.Key) and to reconstruct the path once the goal is reached.
//
// There is one entry per direction command issued, not per cell the snake moved through.
type record struct {
	parents map[BoardKey]parent
}

func newRecord(root *Board, start Pos) *record {
	r := &record{parents: make(map[BoardKey]parent)}
	r.parents[root.Key()] = parent{kind: parentRoot, start: start}
	return r
}

// Has returns whether the board was already recorded.
func (r *record) Has(b *Board) bool {
	_, found := r.parents[b.Key()]
	return found
}

// Add board, reached from prev.
func (r *record) Add(b, prev *Board) {
	r.parents[b.Key()] = parent{kind: parentBoard, board: prev}
}

// Len returns the number of recorded boards.
func (r *record) Len() int {
	return len(r.parents)
}

// Reconstruct the solution leading to goal, by following the parents up to the root.
func (r *record) Reconstruct(goal *Board) *searchers.Solution {
	boards := []*Board{goal}
	var start Pos
	for b := goal; ; {
		p, found := r.parents[b.Key()]
		if !found {
			exceptions.Panicf("board not in the search record:\n%s", b)
		}
		if p.kind == parentRoot {
			start = p.start
			break
		}
		b = p.board
		boards = append(boards, b)
	}
	slices.Reverse(boards)

	if head, _ := boards[0].HeadPosition(); head != start {
		exceptions.Panicf("root board has the snake head at %s, but it was placed at %s", head, start)
	}
	directions := make([]Direction, 0, len(boards)-1)
	for ii := 1; ii < len(boards); ii++ {
		directions = append(directions, directionBetween(boards[ii-1], boards[ii]))
	}
	return &searchers.Solution{
		Start:         start,
		Directions:    directions,
		MoveCount:     len(directions),
		StatesVisited: r.Len(),
		Final:         goal,
	}
}

// directionBetween returns the direction of the slide that took the snake head from its
// position in `from` to its position in `to`. The head may have moved several cells, but only
// along one axis.
func directionBetween(from, to *Board) Direction {
	p1, _ := from.HeadPosition()
	p2, _ := to.HeadPosition()
	switch {
	case p1.Y == p2.Y && p2.X < p1.X:
		return Left
	case p1.Y == p2.Y && p2.X > p1.X:
		return Right
	case p1.X == p2.X && p2.Y < p1.Y:
		return Up
	case p1.X == p2.X && p2.Y > p1.Y:
		return Down
	}
	exceptions.Panicf("consecutive boards in the solution must have the snake head moving along exactly one axis, got %s -> %s", p1, p2)
	return Up
}
