package searchers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/janpfeifer/snakeGo/internal/parameters"
	. "github.com/janpfeifer/snakeGo/internal/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolution(t *testing.T) {
	s := &Solution{Start: Pos{1, 0}, Directions: []Direction{Left, Down}, MoveCount: 2}
	assert.Equal(t, "start=(1, 0) moves=2 [Left Down]", s.String())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":{"x":1,"y":0},"directions":["Left","Down"],"moves":2}`, string(data))

	var decoded Solution
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *s, decoded)
}

func TestErrors(t *testing.T) {
	assert.True(t, errors.Is(ErrBudgetExceeded, ErrNoSolution))
	assert.False(t, errors.Is(ErrNoSolution, ErrBudgetExceeded))
}

type fixedSearcher struct{ moves int }

func (f fixedSearcher) Solve(context.Context, *Board) (*Solution, error) {
	return &Solution{MoveCount: f.moves}, nil
}

func TestRegistry(t *testing.T) {
	Register("fixed", func(params parameters.Params) (Searcher, error) {
		moves, err := parameters.PopParamOr(params, "moves", 1)
		if err != nil {
			return nil, err
		}
		return fixedSearcher{moves}, nil
	})
	s, err := New("fixed,moves=3")
	require.NoError(t, err)
	solution, err := s.Solve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, solution.MoveCount)

	_, err = New("fixed,moves=x")
	assert.ErrorContains(t, err, `failed to create searcher "fixed"`)
	_, err = New("fixed,unknown")
	assert.ErrorContains(t, err, "unknown")
	_, err = New("missing")
	assert.ErrorContains(t, err, `unknown searcher "missing"`)
}

func TestCanonicalConfig(t *testing.T) {
	assert.Equal(t, "bfs", CanonicalConfig(""))
	assert.Equal(t, "bfs", CanonicalConfig(" bfs ,trace"))
	assert.Equal(t, "bfs,global,max_nodes=10", CanonicalConfig("bfs, max_nodes=10 ,global"))
	assert.Equal(t, CanonicalConfig("bfs,global"), CanonicalConfig("bfs, global,trace=true"))
	assert.NotEqual(t, CanonicalConfig("bfs"), CanonicalConfig("bfs,global"))
}
