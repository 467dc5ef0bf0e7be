package searchers

import (
	. "github.com/janpfeifer/snakeGo/internal/state"
	"k8s.io/klog/v2"
)

// Observer receives the events of a search, for monitoring and debugging purposes.
//
// Searchers running independent runs in parallel may call it concurrently.
type Observer interface {
	// StartRun is called when the search from a new start position begins.
	StartRun(start Pos)

	// Expanded is called for each board taken from the frontier. recordSize is the number of
	// boards recorded so far in the run.
	Expanded(board *Board, recordSize int)

	// Goal is called when a board without cherries is reached.
	Goal(board *Board, recordSize int)

	// RunExhausted is called when a run ends without a solution, either because there are no
	// more boards to explore or because the budget was exceeded.
	RunExhausted(start Pos, recordSize int)
}

// NopObserver ignores all events.
type NopObserver struct{}

var _ Observer = NopObserver{}

func (NopObserver) StartRun(Pos)          {}
func (NopObserver) Expanded(*Board, int)  {}
func (NopObserver) Goal(*Board, int)      {}
func (NopObserver) RunExhausted(Pos, int) {}

// KlogObserver logs the events with klog: runs at verbosity level 1, and every expanded board at level 3.
type KlogObserver struct{}

var _ Observer = KlogObserver{}

// StartRun implements Observer.
func (KlogObserver) StartRun(start Pos) {
	klog.V(1).Infof("Starting from %s", start)
}

// Expanded implements Observer.
func (KlogObserver) Expanded(board *Board, recordSize int) {
	if klog.V(3).Enabled() {
		head, _ := board.HeadPosition()
		klog.Infof("Expanding board (head at %s, %d cherries left, %d boards recorded):\n%s",
			head, board.CherryCount(), recordSize, board)
	}
}

// Goal implements Observer.
func (KlogObserver) Goal(board *Board, recordSize int) {
	if klog.V(1).Enabled() {
		klog.Infof("Found solution after recording %d boards:\n%s", recordSize, board)
	}
}

// RunExhausted implements Observer.
func (KlogObserver) RunExhausted(start Pos, recordSize int) {
	klog.V(1).Infof("No solution starting from %s (%d boards recorded)", start, recordSize)
}
