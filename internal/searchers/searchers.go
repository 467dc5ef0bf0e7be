// Package searchers defines the interface of the puzzle searchers, the Solution they return and
// a registry of the available searchers, configurable by a string.
package searchers

import (
	"context"
	"fmt"
	"strings"

	"github.com/janpfeifer/snakeGo/internal/parameters"
	. "github.com/janpfeifer/snakeGo/internal/state"
	"github.com/pkg/errors"
)

var (
	// ErrNoSolution is returned when no start position leads to a board without cherries.
	ErrNoSolution = errors.New("no solution found")

	// ErrBudgetExceeded is returned when no solution was found, but at least one of the runs
	// was cut short by the search budget (max nodes or max time). It wraps ErrNoSolution.
	ErrBudgetExceeded = errors.Wrap(ErrNoSolution, "search budget exceeded")
)

// Searcher is the interface that any of the search algorithms must adhere to be valid.
type Searcher interface {
	// Solve searches for the snake placement and sequence of direction commands that eat all
	// cherries in board, which must not have the snake placed yet.
	//
	// It returns an error wrapping ErrNoSolution if there is none, or the context error if
	// it was interrupted.
	Solve(ctx context.Context, board *Board) (*Solution, error)
}

// Solution to a puzzle: where to place the snake and the directions to slide it.
type Solution struct {
	Start      Pos         `json:"start"`
	Directions []Direction `json:"directions"`

	// MoveCount is the number of direction commands, len(Directions).
	MoveCount int `json:"moves"`

	// StatesVisited is the number of boards in the search record of the successful run.
	StatesVisited int `json:"states_visited,omitempty"`

	// Final board, with no cherries left. It is not serialized.
	Final *Board `json:"-"`
}

// String returns a one-line description of the solution.
func (s *Solution) String() string {
	dirs := make([]string, len(s.Directions))
	for ii, dir := range s.Directions {
		dirs[ii] = dir.String()
	}
	return fmt.Sprintf("start=%s moves=%d [%s]", s.Start, s.MoveCount, strings.Join(dirs, " "))
}

// Factory creates a Searcher from its parameters. It should pop the parameters it uses.
type Factory func(params parameters.Params) (Searcher, error)

var (
	registry = make(map[string]Factory)

	// DefaultConfig is used by New if no configuration is given.
	DefaultConfig = "bfs"
)

// Register a searcher, so it can be created by New. Typically called from the searcher's package init.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// New creates a Searcher from a configuration string: the searcher name followed by a comma-separated
// list of optional parameters with optional values, e.g.: "bfs,max_nodes=100000,global".
//
// If config is empty, DefaultConfig is used. Unknown parameters are reported as errors.
func New(config string) (Searcher, error) {
	name, rest := splitConfig(config)
	factory, found := registry[name]
	if !found {
		return nil, errors.Errorf("unknown searcher %q (is its package linked?)", name)
	}
	params := parameters.NewFromConfigString(rest)
	searcher, err := factory(params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create searcher %q", name)
	}
	if err := parameters.CheckAllConsumed(params); err != nil {
		return nil, errors.WithMessagef(err, "searcher %q", name)
	}
	return searcher, nil
}

// splitConfig returns the searcher name and the rest of the configuration. An empty config
// is replaced by DefaultConfig.
func splitConfig(config string) (name, rest string) {
	if strings.TrimSpace(config) == "" {
		config = DefaultConfig
	}
	name, rest, _ = strings.Cut(config, ",")
	return strings.TrimSpace(name), rest
}

// TracingParams are configuration parameters that only change what is logged, not the
// solutions found. They are dropped by CanonicalConfig.
var TracingParams = []string{"trace"}

// CanonicalConfig returns a normalized form of config: searcher name first, followed by the
// parameters sorted, without spaces and without TracingParams. Configurations that yield the same
// solutions (e.g. "bfs, global" and "bfs,global,trace") have the same canonical form.
//
// It doesn't validate the configuration, see New for that.
func CanonicalConfig(config string) string {
	name, rest := splitConfig(config)
	params := parameters.NewFromConfigString(rest)
	for _, key := range TracingParams {
		delete(params, key)
	}
	if len(params) == 0 {
		return name
	}
	return name + "," + params.String()
}
