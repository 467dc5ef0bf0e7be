// Package spinning provides a friendly spinning clock (or some other spinning symbols)
// to show on the terminal while a puzzle is being solved.
package spinning

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
	"k8s.io/klog/v2"
)

// Spinning is a spinner running on its own goroutine, see New.
type Spinning struct {
	wg     sync.WaitGroup
	cancel func()
}

var (
	ThemeAscii = []rune("|/-\\")
	ThemeMoon  = []rune("🌑🌒🌓🌔🌕🌖🌗🌘")
	ThemeClock = []rune("🕐🕑🕒🕓🕔🕕🕖🕗🕘🕙🕚🕛")

	// Theme defaults to ThemeClock, but it can be set to anything else.
	Theme = ThemeClock

	// Output is where the spinner is drawn. It defaults to os.Stderr, so it doesn't mix with the solutions
	// printed to os.Stdout.
	Output io.Writer = os.Stderr
)

// SafeInterrupt will capture SigInt (Ctrl+C) and SigTerm and call the provided onInterrupt.
// If the program haven't exited after gracePeriod, it will call Reset to reset the terminal
// and exit.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Fprintln(Output)
		klog.Errorf("Got interrupted (signal %q), stopping the search... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}

		// Wait for gracePeriod before exiting.
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	fmt.Fprint(Output, "\033[?25h\033[39;49;0m\n") // Restore cursor and colors.
}

// isTerminal returns whether Output is a terminal.
func isTerminal() bool {
	f, ok := Output.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// New starts a spinning display with the given label, that runs on a separate goroutine.
// It stops when Spinning.Done is called, or when ctx is cancelled.
//
// If Output is not a terminal, nothing is displayed.
func New(ctx context.Context, label string) *Spinning {
	s := &Spinning{}
	if !isTerminal() {
		return s
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		fmt.Fprint(Output, "\033[?25l")       // Hide cursor.
		defer fmt.Fprint(Output, "\033[?25h") // Restore cursor.

		start := time.Now()
		idx := 0
		for {
			fmt.Fprintf(Output, "\r%c %s (%s) ", Theme[idx], label, time.Since(start).Round(time.Second))
			idx = (idx + 1) % len(Theme)
			select {
			case <-ctx.Done():
				fmt.Fprint(Output, "\r\033[K") // Clear line.
				return
			case <-ticker.C:
				// continue
			}
		}
	}()
	return s
}

// Done stops the spinning display and waits for it to clear the line. It can be called more than once.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
