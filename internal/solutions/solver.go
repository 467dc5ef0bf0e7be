package solutions

import (
	"context"

	"github.com/janpfeifer/snakeGo/internal/searchers"
	"github.com/janpfeifer/snakeGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Solver solves puzzles with a searcher, optionally going through a Store first.
type Solver struct {
	config   string
	searcher searchers.Searcher
	store    *Store
}

// NewSolver creates the searcher for config (see searchers.New). If store is not nil, it is used as a cache.
func NewSolver(config string, store *Store) (*Solver, error) {
	searcher, err := searchers.New(config)
	if err != nil {
		return nil, err
	}
	return &Solver{config: config, searcher: searcher, store: store}, nil
}

// Result of Solver.Solve.
type Result struct {
	Board    *state.Board
	Solution *searchers.Solution

	// Cached is true if the result came from the Store.
	Cached bool
}

// Solve parses the puzzle text and searches for a solution.
//
// If there is no solution, it returns the result with the parsed board and an error wrapping
// searchers.ErrNoSolution. Puzzles proven unsolvable are also cached, but not those that ran out of budget
// or were interrupted.
func (s *Solver) Solve(ctx context.Context, puzzle string) (*Result, error) {
	board, err := state.ParsePuzzle(puzzle)
	if err != nil {
		return nil, err
	}
	result := &Result{Board: board}
	if s.store != nil {
		solution, found, err := s.store.Get(puzzle, s.config)
		if err != nil {
			klog.Warningf("Ignoring solutions cache: %v", err)
		} else if found {
			result.Cached = true
			if solution == nil {
				return result, errors.WithMessage(searchers.ErrNoSolution, "cached")
			}
			result.Solution = solution
			return result, nil
		}
	}

	result.Solution, err = s.searcher.Solve(ctx, board)
	if err != nil {
		if s.store != nil && errors.Is(err, searchers.ErrNoSolution) &&
			!errors.Is(err, searchers.ErrBudgetExceeded) && ctx.Err() == nil {
			if putErr := s.store.Put(puzzle, s.config, nil); putErr != nil {
				klog.Warningf("Failed to cache puzzle without solution: %v", putErr)
			}
		}
		return result, err
	}
	if s.store != nil {
		if err := s.store.Put(puzzle, s.config, result.Solution); err != nil {
			klog.Warningf("Failed to cache solution: %v", err)
		}
	}
	return result, nil
}
