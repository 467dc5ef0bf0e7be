package bfs_test

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/janpfeifer/snakeGo/internal/searchers"
	"github.com/janpfeifer/snakeGo/internal/searchers/bfs"
	. "github.com/janpfeifer/snakeGo/internal/state"
	. "github.com/janpfeifer/snakeGo/internal/state/statetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

// checkReplay replays the solution on a freshly parsed board and checks all cherries are eaten.
func checkReplay(t *testing.T, rows []string, solution *searchers.Solution) {
	t.Helper()
	final, err := Replay(BuildBoard(rows...), solution.Start, solution.Directions)
	require.NoError(t, err)
	assert.True(t, final.IsComplete(), "replayed solution %s left cherries:\n%s", solution, final)
	assert.True(t, final.Equal(solution.Final))
	assert.Equal(t, len(solution.Directions), solution.MoveCount)
}

func TestSolveSmall(t *testing.T) {
	rows := []string{"cc", "rc"}
	solution, err := bfs.New().Solve(context.Background(), BuildBoard(rows...))
	require.NoError(t, err)
	assert.Equal(t, Pos{0, 0}, solution.Start)
	assert.Equal(t, []Direction{Right, Down}, solution.Directions)
	assert.Equal(t, 2, solution.MoveCount)
	checkReplay(t, rows, solution)
}

func TestSolveRing(t *testing.T) {
	rows := []string{"ccc", "crc", "ccc"}
	solution, err := bfs.New().Solve(context.Background(), BuildBoard(rows...))
	require.NoError(t, err)
	assert.Equal(t, Pos{0, 0}, solution.Start)
	// Down is generated before Right, so its branch reaches the goal first.
	assert.Equal(t, []Direction{Down, Right, Up, Left}, solution.Directions)
	checkReplay(t, rows, solution)
}

func TestNoSolution(t *testing.T) {
	ctx := context.Background()

	// No cherries at all.
	_, err := bfs.New().Solve(ctx, BuildBoard("rr", "rr"))
	assert.True(t, errors.Is(err, searchers.ErrNoSolution), "got %v", err)
	_, err = bfs.New().Solve(ctx, Parse(""))
	assert.True(t, errors.Is(err, searchers.ErrNoSolution), "got %v", err)

	// A plus shape can't be fully eaten from any of its cells.
	rows := []string{"rcr", "ccc", "rcr"}
	_, _, found := BruteForceGlobalMinMoves(rows)
	require.False(t, found)
	_, err = bfs.New().Solve(ctx, BuildBoard(rows...))
	assert.True(t, errors.Is(err, searchers.ErrNoSolution), "got %v", err)
	assert.False(t, errors.Is(err, searchers.ErrBudgetExceeded))
	_, err = bfs.New().WithGlobalOptimum(true).Solve(ctx, BuildBoard(rows...))
	assert.True(t, errors.Is(err, searchers.ErrNoSolution), "got %v", err)
}

func TestSolvePlacedBoard(t *testing.T) {
	b := BuildBoard("cc").WithHeadPlaced(Pos{0, 0})
	_, err := bfs.New().Solve(context.Background(), b)
	assert.ErrorContains(t, err, "already has the snake placed")
}

// randomRows returns a puzzle of the given size with ~25% of rocks.
func randomRows(rng *rand.Rand, width, height int) []string {
	rows := make([]string, height)
	for y := range rows {
		row := []byte(strings.Repeat("c", width))
		for x := range row {
			if rng.IntN(4) == 0 {
				row[x] = 'r'
			}
		}
		rows[y] = string(row)
	}
	return rows
}

// TestAgainstBruteForce compares the searcher with an independent brute-force search on small puzzles.
func TestAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 29))
	fixtures := [][]string{
		{"cc", "rc"},
		{"ccc", "crc", "ccc"},
		{"cccc", "crcc", "cccr", "cccc"},
		{"ccrc", "cccc", "rccc"},
		{"c"},
	}
	for range 60 {
		fixtures = append(fixtures, randomRows(rng, 1+rng.IntN(4), 1+rng.IntN(4)))
	}

	ctx := context.Background()
	for _, rows := range fixtures {
		board := BuildBoard(rows...)
		name := strings.Join(rows, "/")

		// First start position (in row-major order) with a solution wins.
		var wantStart Pos
		wantMoves, found := 0, false
		for _, start := range board.StartingPositions() {
			if wantMoves, found = BruteForceMinMoves(rows, start); found {
				wantStart = start
				break
			}
		}
		solution, err := bfs.New().Solve(ctx, board)
		if !found {
			assert.Truef(t, errors.Is(err, searchers.ErrNoSolution), "%s: got %v", name, err)
		} else if assert.NoErrorf(t, err, "%s", name) {
			assert.Equalf(t, wantStart, solution.Start, "%s", name)
			assert.Equalf(t, wantMoves, solution.MoveCount, "%s", name)
			checkReplay(t, rows, solution)
		}

		// Global optimum, sequential and in parallel.
		globalMoves, globalStart, globalFound := BruteForceGlobalMinMoves(rows)
		for _, parallelism := range []int{1, 3} {
			solution, err = bfs.New().WithGlobalOptimum(true).WithParallelism(parallelism).Solve(ctx, board)
			if !globalFound {
				assert.Truef(t, errors.Is(err, searchers.ErrNoSolution), "%s: got %v", name, err)
				continue
			}
			if assert.NoErrorf(t, err, "%s", name) {
				assert.Equalf(t, globalStart, solution.Start, "%s", name)
				assert.Equalf(t, globalMoves, solution.MoveCount, "%s", name)
				checkReplay(t, rows, solution)
			}
		}
	}
}

// TestNoOps checks that including blocked directions doesn't change the solutions.
func TestNoOps(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 8))
	ctx := context.Background()
	for range 30 {
		board := BuildBoard(randomRows(rng, 1+rng.IntN(5), 1+rng.IntN(5))...)
		want, wantErr := bfs.New().Solve(ctx, board)
		got, gotErr := bfs.New().WithNoOps(true).Solve(ctx, board)
		if wantErr != nil {
			assert.Error(t, gotErr)
			continue
		}
		require.NoError(t, gotErr)
		assert.Equal(t, want.Start, got.Start)
		assert.Equal(t, want.Directions, got.Directions)
	}
}

// recordingObserver keeps track of the search events.
type recordingObserver struct {
	mu         sync.Mutex
	runs       []Pos
	expanded   map[BoardKey]int
	goals      int
	exhausted  []Pos
	recordSize int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{expanded: make(map[BoardKey]int)}
}

func (o *recordingObserver) StartRun(start Pos) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runs = append(o.runs, start)
	clear(o.expanded)
}

func (o *recordingObserver) Expanded(board *Board, recordSize int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.expanded[board.Key()]++
	o.recordSize = recordSize
}

func (o *recordingObserver) Goal(_ *Board, recordSize int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.goals++
	o.recordSize = recordSize
}

func (o *recordingObserver) RunExhausted(start Pos, recordSize int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.exhausted = append(o.exhausted, start)
	o.recordSize = recordSize
}

func TestObserver(t *testing.T) {
	// The first start (0, 0) is a dead end, the second one (1, 0) solves it.
	rows := []string{"ccr", "ccc"}
	board := BuildBoard(rows...)
	obs := newRecordingObserver()
	solution, err := bfs.New().WithObserver(obs).Solve(context.Background(), board)
	require.NoError(t, err)
	checkReplay(t, rows, solution)

	require.NotEmpty(t, obs.runs)
	assert.Equal(t, solution.Start, obs.runs[len(obs.runs)-1])
	assert.Equal(t, obs.runs[:len(obs.runs)-1], obs.exhausted)
	assert.Equal(t, 1, obs.goals)

	// No board is expanded twice, and there are never more boards expanded than recorded.
	for key, count := range obs.expanded {
		assert.Equal(t, 1, count, "board expanded %d times:\n%s", count, key)
	}
	assert.LessOrEqual(t, len(obs.expanded), solution.StatesVisited)
	assert.Equal(t, obs.recordSize, solution.StatesVisited)
}

func TestMaxNodes(t *testing.T) {
	board := BuildBoard("ccc", "crc", "ccc")
	_, err := bfs.New().WithMaxNodes(1).Solve(context.Background(), board)
	assert.True(t, errors.Is(err, searchers.ErrBudgetExceeded), "got %v", err)
	assert.True(t, errors.Is(err, searchers.ErrNoSolution), "got %v", err)

	// Large enough budget.
	solution, err := bfs.New().WithMaxNodes(100).Solve(context.Background(), board)
	require.NoError(t, err)
	assert.Equal(t, 4, solution.MoveCount)
}

func TestContext(t *testing.T) {
	board := BuildBoard("ccc", "crc", "ccc")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bfs.New().Solve(ctx, board)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	_, err = bfs.New().WithGlobalOptimum(true).WithParallelism(2).Solve(ctx, board)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)

	// An expired caller's deadline is not reported as a budget problem.
	ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	_, err = bfs.New().WithMaxTime(time.Hour).Solve(ctx, board)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.False(t, errors.Is(err, searchers.ErrBudgetExceeded))
}

func TestNewFromConfig(t *testing.T) {
	searcher, err := searchers.New("bfs, max_nodes=1000, max_time=1m, global, parallelism=2, noops")
	require.NoError(t, err)
	solution, err := searcher.Solve(context.Background(), BuildBoard("cc", "rc"))
	require.NoError(t, err)
	assert.Equal(t, 2, solution.MoveCount)

	searcher, err = searchers.New("")
	require.NoError(t, err)
	assert.IsType(t, &bfs.Searcher{}, searcher)

	_, err = searchers.New("bfs,max_nodes=-1")
	assert.Error(t, err)
	_, err = searchers.New("bfs,parallelism=0")
	assert.Error(t, err)
	_, err = searchers.New("bfs,max_nodez=10")
	assert.ErrorContains(t, err, "max_nodez")
	_, err = searchers.New("dfs")
	assert.ErrorContains(t, err, "unknown searcher")
}
