// Package statetest provides helper functions to create tests using the snake puzzle state.
package statetest

import (
	"fmt"
	"strings"

	. "github.com/janpfeifer/snakeGo/internal/state"
)

// BuildBoard from the given rows, see state.ParseLines.
func BuildBoard(rows ...string) *Board {
	return ParseLines(rows)
}

// PrintBoard prints the board followed by an empty line, handy when debugging tests with -v.
func PrintBoard(b *Board) {
	fmt.Printf("%s\n\n", b)
}

// grid is a naive, mutable copy of a puzzle used by BruteForceMinMoves. It doesn't use
// state.Board movement, so it can be used to check the searchers independently.
type grid [][]byte

const (
	gridRock   = 'r'
	gridCherry = 'c'
	gridBody   = '#'
)

func newGrid(rows []string) grid {
	g := make(grid, len(rows))
	for y, row := range rows {
		row = strings.TrimSpace(row)
		g[y] = make([]byte, len(row))
		for x := range len(row) {
			if row[x] == gridRock {
				g[y][x] = gridRock
			} else {
				g[y][x] = gridCherry
			}
		}
	}
	return g
}

func (g grid) free(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y]) && g[y][x] == gridCherry
}

func (g grid) cherries() (count int) {
	for _, row := range g {
		count += strings.Count(string(row), string(rune(gridCherry)))
	}
	return
}

var steps = [4][2]int{{0, -1}, {0, 1}, {1, 0}, {-1, 0}}

// minMovesFrom runs a depth-limited search, undoing the moves on the way back.
func (g grid) minMovesFrom(x, y, remaining, depthLeft int) bool {
	if remaining == 0 {
		return true
	}
	if depthLeft == 0 {
		return false
	}
	for _, step := range steps {
		var trail [][2]int
		hx, hy := x, y
		for g.free(hx+step[0], hy+step[1]) {
			hx, hy = hx+step[0], hy+step[1]
			g[hy][hx] = gridBody
			trail = append(trail, [2]int{hx, hy})
		}
		if len(trail) == 0 {
			continue
		}
		found := g.minMovesFrom(hx, hy, remaining-len(trail), depthLeft-1)
		for _, cell := range trail {
			g[cell[1]][cell[0]] = gridCherry
		}
		if found {
			return true
		}
	}
	return false
}

// BruteForceMinMoves returns the minimum number of direction commands needed to eat every
// cherry when the snake is placed at start, using iterative deepening over all direction
// sequences. It returns false if there is no solution.
//
// It is exponential, only meant for small fixtures (4x4 or smaller).
func BruteForceMinMoves(rows []string, start Pos) (int, bool) {
	g := newGrid(rows)
	if !g.free(start.X, start.Y) {
		return 0, false
	}
	g[start.Y][start.X] = gridBody
	remaining := g.cherries()
	// Each useful command eats at least one cherry.
	for depth := 0; depth <= remaining; depth++ {
		if g.minMovesFrom(start.X, start.Y, remaining, depth) {
			return depth, true
		}
	}
	return 0, false
}

// BruteForceGlobalMinMoves returns the minimum over all start positions, the first (in
// row-major order) start position that achieves it, and whether any solution exists.
func BruteForceGlobalMinMoves(rows []string) (best int, bestStart Pos, found bool) {
	g := newGrid(rows)
	for y, row := range g {
		for x := range row {
			if !g.free(x, y) {
				continue
			}
			start := Pos{X: x, Y: y}
			moves, ok := BruteForceMinMoves(rows, start)
			if ok && (!found || moves < best) {
				best, bestStart, found = moves, start, true
			}
		}
	}
	return
}
