package bfs

import (
	"github.com/janpfeifer/snakeGo/internal/parameters"
	"github.com/janpfeifer/snakeGo/internal/searchers"
	"github.com/pkg/errors"
)

func init() {
	searchers.Register("bfs", func(params parameters.Params) (searchers.Searcher, error) {
		return NewFromParams(params)
	})
}

// NewFromParams creates a breadth-first Searcher from the configuration parameters. It pops the
// parameters it uses:
//
//   - max_nodes: maximum number of boards recorded per start position, 0 for no limit.
//   - max_time: time budget for the whole search (e.g. "30s"), 0 for no limit.
//   - global: search all start positions and return the shortest solution.
//   - parallelism: number of start positions searched simultaneously with global.
//   - noops: include blocked directions when generating moves.
//   - trace: log search events with klog (see searchers.KlogObserver).
func NewFromParams(params parameters.Params) (*Searcher, error) {
	s := New()
	maxNodes, err := parameters.PopParamOr(params, "max_nodes", 0)
	if err != nil {
		return nil, err
	}
	if maxNodes < 0 {
		return nil, errors.Errorf("negative max_nodes value (%d given) not possible", maxNodes)
	}
	s.WithMaxNodes(maxNodes)

	maxTime, err := parameters.PopParamOr(params, "max_time", s.maxTime)
	if err != nil {
		return nil, err
	}
	if maxTime < 0 {
		return nil, errors.Errorf("negative max_time value (%s given) not possible", maxTime)
	}
	s.WithMaxTime(maxTime)

	global, err := parameters.PopParamOr(params, "global", false)
	if err != nil {
		return nil, err
	}
	s.WithGlobalOptimum(global)

	parallelism, err := parameters.PopParamOr(params, "parallelism", s.parallelism)
	if err != nil {
		return nil, err
	}
	if parallelism < 1 {
		return nil, errors.Errorf("parallelism must be at least 1, got %d", parallelism)
	}
	s.WithParallelism(parallelism)

	noOps, err := parameters.PopParamOr(params, "noops", false)
	if err != nil {
		return nil, err
	}
	s.WithNoOps(noOps)

	trace, err := parameters.PopParamOr(params, "trace", false)
	if err != nil {
		return nil, err
	}
	if trace {
		s.WithObserver(searchers.KlogObserver{})
	}
	return s, nil
}
