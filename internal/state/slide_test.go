package state_test

import (
	"math/rand/v2"
	"testing"

	. "github.com/janpfeifer/snakeGo/internal/state"
	. "github.com/janpfeifer/snakeGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlide(t *testing.T) {
	// Chains through all cherries until the wall.
	b := BuildBoard("cccc").WithHeadPlaced(Pos{0, 0})
	next, cells := b.Slide(Right)
	assert.Equal(t, 3, cells)
	assert.Equal(t, "###@", next.String())
	assert.True(t, next.IsComplete())
	head, _ := next.HeadPosition()
	assert.Equal(t, Pos{3, 0}, head)

	// Stops before a rock.
	b = BuildBoard("ccrc").WithHeadPlaced(Pos{0, 0})
	next, cells = b.Slide(Right)
	assert.Equal(t, 1, cells)
	assert.Equal(t, "#@rc", next.String())

	// Stops before its own body.
	b = BuildBoard("ccc", "crc", "ccc").WithHeadPlaced(Pos{0, 0})
	for _, dir := range []Direction{Right, Down, Left} {
		b, cells = b.Slide(dir)
		assert.Equal(t, 2, cells, "sliding %s", dir)
	}
	b, cells = b.Slide(Up)
	assert.Equal(t, 1, cells)
	assert.Equal(t, "###\n@r#\n###", b.String())
	assert.True(t, b.IsComplete())

	// Example from the puzzle description: Left to the wall, then Down is blocked by the rock.
	b = BuildBoard("cc", "rc").WithHeadPlaced(Pos{1, 0})
	b, cells = b.Slide(Left)
	assert.Equal(t, 1, cells)
	assert.Equal(t, "@#\nrc", b.String())
	_, cells = b.Slide(Down)
	assert.Equal(t, 0, cells)
}

func TestSlideBlocked(t *testing.T) {
	b := BuildBoard("cc", "rc").WithHeadPlaced(Pos{0, 0})
	for _, dir := range []Direction{Up, Down, Left} {
		next, cells := b.Slide(dir)
		assert.Equal(t, 0, cells, "sliding %s", dir)
		assert.Same(t, b, next, "blocked slide %s must return the same board", dir)
		assert.True(t, b.Equal(next))
	}
}

func TestSlideRaggedRows(t *testing.T) {
	// The second row is shorter: moving right from its only cell goes off-grid.
	b := BuildBoard("ccc", "c").WithHeadPlaced(Pos{0, 1})
	_, cells := b.Slide(Right)
	assert.Equal(t, 0, cells)
	next, cells := b.Slide(Up)
	assert.Equal(t, 1, cells)
	assert.Equal(t, "@cc\n#", next.String())

	// Moving up into a shorter row.
	b = BuildBoard("c", "ccc").WithHeadPlaced(Pos{2, 1})
	_, cells = b.Slide(Up)
	assert.Equal(t, 0, cells)
}

func TestSlidePreconditions(t *testing.T) {
	assert.Panics(t, func() { BuildBoard("cc").Slide(Right) }, "sliding before placing the snake")
}

func TestSlideIsDeterministic(t *testing.T) {
	b := BuildBoard("cccc", "crrc", "cccc").WithHeadPlaced(Pos{1, 0})
	for _, dir := range Directions {
		first, cells1 := b.Slide(dir)
		second, cells2 := b.Slide(dir)
		assert.Equal(t, cells1, cells2)
		assert.True(t, first.Equal(second), "sliding %s twice from the same board", dir)
	}
}

// TestSlideTerminates checks that a slide never moves more cells than there are cherries.
func TestSlideTerminates(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 11))
	for range 200 {
		b := randomBoard(rng, 1+rng.IntN(6), 1+rng.IntN(6))
		starts := b.StartingPositions()
		if len(starts) == 0 {
			continue
		}
		b = b.WithHeadPlaced(starts[rng.IntN(len(starts))])
		for _, dir := range Directions {
			next, cells := b.Slide(dir)
			assert.LessOrEqual(t, cells, b.CherryCount())
			assert.Equal(t, b.CherryCount()-cells, next.CherryCount())
		}
	}
}

func TestMoves(t *testing.T) {
	b := BuildBoard("ccc", "crc", "ccc").WithHeadPlaced(Pos{0, 0})
	moves := b.Moves()
	require.Len(t, moves, 2)
	assert.Equal(t, Down, moves[0].Direction)
	assert.Equal(t, 2, moves[0].Cells)
	assert.Equal(t, "#cc\n#rc\n@cc", moves[0].Board.String())
	assert.Equal(t, Right, moves[1].Direction)
	assert.Equal(t, "##@\ncrc\nccc", moves[1].Board.String())

	all := b.AllMoves()
	require.Len(t, all, 4)
	for ii, dir := range Directions {
		assert.Equal(t, dir, all[ii].Direction)
	}
	assert.Same(t, b, all[0].Board) // Up is blocked.
	assert.Same(t, b, all[3].Board) // Left is blocked.
	assert.True(t, all[1].Board.Equal(moves[0].Board))
	assert.True(t, all[2].Board.Equal(moves[1].Board))

	// Snake fully surrounded.
	b = BuildBoard("rcr", "rrr").WithHeadPlaced(Pos{1, 0})
	assert.Empty(t, b.Moves())
	assert.Len(t, b.AllMoves(), 4)
}

func TestReplay(t *testing.T) {
	b := BuildBoard("ccc", "crc", "ccc")
	final, err := Replay(b, Pos{0, 0}, []Direction{Down, Right, Up, Left})
	require.NoError(t, err)
	assert.True(t, final.IsComplete())
	assert.Equal(t, "#@#\n#r#\n###", final.String())

	_, err = Replay(b, Pos{1, 1}, nil)
	assert.ErrorContains(t, err, "Rock")
	_, err = Replay(b, Pos{7, 1}, nil)
	assert.ErrorContains(t, err, "outside")
	_, err = Replay(b, Pos{0, 0}, []Direction{Down, Up})
	assert.ErrorContains(t, err, "move #2")
}
