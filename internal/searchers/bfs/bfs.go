// Package bfs implements a breadth-first search over the boards of the snake puzzle.
//
// Each start position (in row-major order) is an independent run, with its own search
// record and frontier. By default the first start position with a solution wins: breadth-first
// order guarantees its solution has the minimum number of direction commands for that start
// position, but a later start position could have a shorter one. Use WithGlobalOptimum to
// search all of them.
package bfs

import (
	"context"
	"time"

	"github.com/janpfeifer/snakeGo/internal/generics"
	"github.com/janpfeifer/snakeGo/internal/searchers"
	. "github.com/janpfeifer/snakeGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Searcher implements the searchers.Searcher interface with a breadth-first search.
type Searcher struct {
	maxNodes     int
	maxTime      time.Duration
	global       bool
	parallelism  int
	includeNoOps bool
	observer     searchers.Observer
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns a breadth-first searchers.Searcher.
// There are many other optional configurations, see methods Searcher.With...
func New() *Searcher {
	return &Searcher{
		parallelism: 1,
		observer:    searchers.NopObserver{},
	}
}

// WithMaxNodes sets a budget of boards recorded per run (per start position). A run that
// exceeds it is abandoned, and if no other run finds a solution, Solve returns
// searchers.ErrBudgetExceeded.
//
// The default is 0, meaning no limit.
func (s *Searcher) WithMaxNodes(maxNodes int) *Searcher {
	s.maxNodes = max(maxNodes, 0)
	return s
}

// WithMaxTime sets a time budget for the whole Solve call. If it expires before a solution is
// found, Solve returns searchers.ErrBudgetExceeded.
//
// The default is 0, meaning no limit.
func (s *Searcher) WithMaxTime(maxTime time.Duration) *Searcher {
	s.maxTime = max(maxTime, 0)
	return s
}

// WithGlobalOptimum makes the searcher run all start positions to completion and return the
// solution with the fewest moves (ties broken by start position order), instead of the solution
// of the first start position that has one.
func (s *Searcher) WithGlobalOptimum(global bool) *Searcher {
	s.global = global
	return s
}

// WithParallelism sets the number of start positions searched simultaneously when using
// WithGlobalOptimum. Each run still owns its record and frontier. The observer must be safe
// for concurrent use if parallelism > 1.
//
// The default is 1.
func (s *Searcher) WithParallelism(parallelism int) *Searcher {
	s.parallelism = max(parallelism, 1)
	return s
}

// WithNoOps makes the move generation include blocked directions, whose board is the same as the
// current one. They are always discarded as already visited, so it doesn't change the solutions,
// it only wastes a generation step: it is only useful for debugging and benchmarking.
func (s *Searcher) WithNoOps(includeNoOps bool) *Searcher {
	s.includeNoOps = includeNoOps
	return s
}

// WithObserver sets an observer of the search events. Use searchers.KlogObserver to trace the search.
func (s *Searcher) WithObserver(observer searchers.Observer) *Searcher {
	if observer == nil {
		observer = searchers.NopObserver{}
	}
	s.observer = observer
	return s
}

// runOutcome of the search from one start position.
type runOutcome uint8

const (
	runSolved runOutcome = iota
	runExhausted
	runOverBudget
)

// ctxCheckInterval is the number of expanded boards between checks of the context.
const ctxCheckInterval = 256

// Solve implements searchers.Searcher.
func (s *Searcher) Solve(ctx context.Context, board *Board) (*searchers.Solution, error) {
	if head, found := board.HeadPosition(); found {
		return nil, errors.Errorf("board already has the snake placed at %s", head)
	}
	starts := board.StartingPositions()
	if len(starts) == 0 {
		return nil, errors.WithMessage(searchers.ErrNoSolution, "board has no cherries")
	}

	parentCtx := ctx
	if s.maxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.maxTime)
		defer cancel()
	}

	var solution *searchers.Solution
	var err error
	if s.global {
		solution, err = s.solveGlobal(ctx, board, starts)
	} else {
		solution, err = s.solveFirst(ctx, board, starts)
	}
	if err != nil && errors.Is(err, context.DeadlineExceeded) && parentCtx.Err() == nil {
		// Our own time budget expired, not the caller's context.
		return nil, errors.WithMessagef(searchers.ErrBudgetExceeded, "max time %s", s.maxTime)
	}
	return solution, err
}

// solveFirst returns the solution of the first start position that has one.
func (s *Searcher) solveFirst(ctx context.Context, board *Board, starts []Pos) (*searchers.Solution, error) {
	overBudget := false
	for _, start := range starts {
		solution, outcome, err := s.run(ctx, board, start)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case runSolved:
			return solution, nil
		case runOverBudget:
			overBudget = true
		}
	}
	if overBudget {
		return nil, searchers.ErrBudgetExceeded
	}
	return nil, searchers.ErrNoSolution
}

// solveGlobal runs all start positions and returns the shortest solution.
func (s *Searcher) solveGlobal(ctx context.Context, board *Board, starts []Pos) (*searchers.Solution, error) {
	solutions := make([]*searchers.Solution, len(starts))
	outcomes := make([]runOutcome, len(starts))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for idx, start := range starts {
		g.Go(func() error {
			var err error
			solutions[idx], outcomes[idx], err = s.run(gCtx, board, start)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best *searchers.Solution
	overBudget := false
	for idx, solution := range solutions {
		if outcomes[idx] == runOverBudget {
			overBudget = true
		}
		if solution != nil && (best == nil || solution.MoveCount < best.MoveCount) {
			best = solution
		}
	}
	switch {
	case best != nil:
		if klog.V(1).Enabled() {
			klog.Infof("Best of %d start positions: %s", len(starts), best)
		}
		return best, nil
	case overBudget:
		return nil, searchers.ErrBudgetExceeded
	default:
		return nil, searchers.ErrNoSolution
	}
}

// run the breadth-first search with the snake placed at start.
func (s *Searcher) run(ctx context.Context, board *Board, start Pos) (*searchers.Solution, runOutcome, error) {
	root := board.WithHeadPlaced(start)
	s.observer.StartRun(start)
	rec := newRecord(root, start)
	var frontier generics.Queue[*Board]
	frontier.Push(root)
	for count := 0; ; count++ {
		if count%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, runExhausted, errors.Wrapf(err, "search interrupted while starting from %s", start)
			}
		}
		b, ok := frontier.Pop()
		if !ok {
			break
		}
		s.observer.Expanded(b, rec.Len())
		if b.IsComplete() {
			s.observer.Goal(b, rec.Len())
			return rec.Reconstruct(b), runSolved, nil
		}
		for _, m := range s.moves(b) {
			if rec.Has(m.Board) {
				continue
			}
			if s.maxNodes > 0 && rec.Len() >= s.maxNodes {
				s.observer.RunExhausted(start, rec.Len())
				return nil, runOverBudget, nil
			}
			rec.Add(m.Board, b)
			frontier.Push(m.Board)
		}
	}
	s.observer.RunExhausted(start, rec.Len())
	return nil, runExhausted, nil
}

func (s *Searcher) moves(b *Board) []Move {
	if s.includeNoOps {
		return b.AllMoves()
	}
	return b.Moves()
}
