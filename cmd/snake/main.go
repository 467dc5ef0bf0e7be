// snake solves sliding-snake cherry puzzles.
//
// The puzzle is read from stdin, or from each of the files given as arguments. Each line is a row,
// 'r' is a rock and any other character a cherry. Example:
//
//	$ printf 'cc\nrc\n' | go run ./cmd/snake -quiet
//	Solution found in 2 moves.
//	Place snake at 0, 0
//	 0. Right
//	 1. Down
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/janpfeifer/must"
	"github.com/janpfeifer/snakeGo/internal/profilers"
	"github.com/janpfeifer/snakeGo/internal/searchers"
	_ "github.com/janpfeifer/snakeGo/internal/searchers/bfs"
	"github.com/janpfeifer/snakeGo/internal/solutions"
	. "github.com/janpfeifer/snakeGo/internal/state"
	"github.com/janpfeifer/snakeGo/internal/ui/cli"
	"github.com/janpfeifer/snakeGo/internal/ui/spinning"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagConfig = flag.String("config", searchers.DefaultConfig,
		"Searcher configuration, e.g.: \"bfs,max_nodes=1000000,max_time=1m,global,parallelism=4\".")
	flagColor       = flag.Bool("color", true, "Print boards with colors.")
	flagCache       = flag.String("cache", "", "If set, path to a SQLite database used to cache solutions.")
	flagVerify      = flag.Bool("verify", false, "Replay solutions on the puzzle and check all cherries are eaten.")
	flagQuiet       = flag.Bool("quiet", false, "Only print the solutions: no boards and no spinner.")
	flagSteps       = flag.Bool("steps", false, "Print the board after each move of the solution.")
	flagParallelism = flag.Int("parallelism", runtime.NumCPU(), "Number of puzzle files solved simultaneously.")

	globalCtx = context.Background()
)

// puzzle to solve and its result.
type puzzle struct {
	name, text string
	result     *solutions.Result
	err        error
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagParallelism <= 0 {
		klog.Fatalf("Invalid -parallelism=%d", *flagParallelism)
	}

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()
	must.M(profilers.Setup(globalCtx))
	defer profilers.OnQuit()

	var store *solutions.Store
	if *flagCache != "" {
		store = must.M1(solutions.Open(*flagCache))
		defer func() { _ = store.Close() }()
	}
	solver, err := solutions.NewSolver(*flagConfig, store)
	if err != nil {
		klog.Exitf("Invalid -config=%q: %+v", *flagConfig, err)
	}

	puzzles, err := readPuzzles(os.Stdin, flag.Args())
	if err != nil {
		klog.Exitf("Failed to read puzzles: %+v", err)
	}

	var s *spinning.Spinning
	if !*flagQuiet {
		s = spinning.New(globalCtx, fmt.Sprintf("Solving %d puzzle(s)", len(puzzles)))
	}
	solveAll(globalCtx, solver, puzzles)
	if s != nil {
		s.Done()
	}

	ui := cli.New(*flagColor)
	failed := false
	for ii, p := range puzzles {
		if len(puzzles) > 1 {
			if ii > 0 {
				fmt.Println()
			}
			fmt.Printf("%s:\n", p.name)
		}
		if !printResult(ui, p) {
			failed = true
		}
	}
	if failed {
		profilers.OnQuit()
		os.Exit(1)
	}
}

// readPuzzles from the given files, or from stdin if no files are given.
// Puzzles are normalized and validated, see cli.ReadPuzzleText.
func readPuzzles(stdin io.Reader, paths []string) ([]*puzzle, error) {
	if len(paths) == 0 {
		text, err := cli.ReadPuzzleText(stdin)
		if err != nil {
			return nil, errors.WithMessage(err, "puzzle from stdin")
		}
		return []*puzzle{{name: "stdin", text: text}}, nil
	}
	puzzles := make([]*puzzle, 0, len(paths))
	for _, path := range paths {
		text, err := readPuzzleFile(path)
		if err != nil {
			return nil, err
		}
		puzzles = append(puzzles, &puzzle{name: path, text: text})
	}
	return puzzles, nil
}

func readPuzzleFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open puzzle file %q", path)
	}
	defer func() { _ = f.Close() }()
	text, err := cli.ReadPuzzleText(f)
	if err != nil {
		return "", errors.WithMessagef(err, "puzzle file %q", path)
	}
	return text, nil
}

// solveAll puzzles, in parallel. Errors are stored in each puzzle.
func solveAll(ctx context.Context, solver *solutions.Solver, puzzles []*puzzle) {
	var wg errgroup.Group
	wg.SetLimit(*flagParallelism)
	for _, p := range puzzles {
		wg.Go(func() error {
			start := time.Now()
			p.result, p.err = solver.Solve(ctx, p.text)
			klog.V(1).Infof("%s: solved in %s (err=%v)", p.name, time.Since(start), p.err)
			return nil
		})
	}
	_ = wg.Wait()
}

// printResult of the puzzle. It returns false if the puzzle couldn't be solved for any other
// reason than being proven unsolvable (e.g. the search was interrupted or ran out of budget), or if
// the solution failed verification.
func printResult(ui *cli.UI, p *puzzle) bool {
	w := ui.Writer()
	if p.result == nil {
		fmt.Fprintf(w, "Invalid puzzle: %v\n", p.err)
		return false
	}
	if !*flagQuiet {
		ui.PrintBoard(p.result.Board)
		fmt.Fprintln(w)
	}
	if p.err != nil {
		ui.PrintNoSolution(p.err)
		if !errors.Is(p.err, searchers.ErrNoSolution) || errors.Is(p.err, searchers.ErrBudgetExceeded) {
			klog.Errorf("%s: %+v", p.name, p.err)
			return false
		}
		return true
	}
	solution := p.result.Solution
	ui.PrintSolution(solution)
	if p.result.Cached {
		klog.V(1).Infof("%s: solution from cache %q", p.name, *flagCache)
	}
	if *flagVerify {
		if err := verify(p.result.Board, solution); err != nil {
			fmt.Fprintf(w, "Verification failed: %v\n", err)
			return false
		}
		fmt.Fprintln(w, "Verified.")
	}
	if *flagSteps {
		if err := ui.PrintSteps(p.result.Board, solution); err != nil {
			klog.Errorf("%s: %+v", p.name, err)
			return false
		}
	}
	return true
}

// verify replays the solution from the start and checks all cherries are eaten.
func verify(board *Board, solution *searchers.Solution) error {
	final, err := Replay(board, solution.Start, solution.Directions)
	if err != nil {
		return err
	}
	if !final.IsComplete() {
		return errors.Errorf("%d cherries left after replaying %s", final.CherryCount(), solution)
	}
	return nil
}
