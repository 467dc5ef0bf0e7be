// Package cli implements a command-line UI for the puzzle: reading a puzzle and printing boards and solutions.
package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/snakeGo/internal/searchers"
	. "github.com/janpfeifer/snakeGo/internal/state"
	"golang.org/x/term"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

var (
	rockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cherryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	headStyle   = lipgloss.NewStyle().Background(lipgloss.Color("10")).Foreground(lipgloss.Color("0")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Background(lipgloss.Color("13")).Foreground(lipgloss.Color("0")).Padding(0, 2)
)

// UI prints boards and solutions to a writer, by default os.Stdout.
type UI struct {
	color bool
	out   io.Writer
}

// New creates a UI that prints to os.Stdout. If color is true, boards and titles are rendered with colors.
func New(color bool) *UI {
	return &UI{color: color, out: os.Stdout}
}

// WithWriter sets where the UI prints to.
func (ui *UI) WithWriter(w io.Writer) *UI {
	ui.out = w
	return ui
}

// Writer returns where the UI prints to.
func (ui *UI) Writer() io.Writer {
	return ui.out
}

// terminalWidth returns the width of the terminal, or 0 if not printing to a terminal.
func (ui *UI) terminalWidth() int {
	f, ok := ui.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// printCentered prints the block of text centered in the terminal, if printing to one.
func (ui *UI) printCentered(block string) {
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((ui.terminalWidth()-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			fmt.Fprintln(ui.out)
			continue
		}
		fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

func (ui *UI) render(style lipgloss.Style, s string) string {
	if !ui.color {
		return s
	}
	return style.Render(s)
}

// renderTile returns the tile's rune, colored if the UI uses colors.
func (ui *UI) renderTile(tile Tile) string {
	s := string(TileRunes[tile])
	switch tile {
	case Rock:
		return ui.render(rockStyle, s)
	case Cherry:
		return ui.render(cherryStyle, s)
	case SnakeBody:
		return ui.render(bodyStyle, s)
	case SnakeHead:
		return ui.render(headStyle, s)
	}
	return s
}

// PrintBoard prints the board, one row per line, with a space between cells.
func (ui *UI) PrintBoard(board *Board) {
	var sb strings.Builder
	for y := range board.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range board.Width(y) {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(ui.renderTile(board.Tile(Pos{x, y})))
		}
	}
	ui.printCentered(sb.String())
}

// PrintSolution prints the number of moves, where to place the snake and the list of directions.
func (ui *UI) PrintSolution(solution *searchers.Solution) {
	fmt.Fprintln(ui.out, ui.render(titleStyle, fmt.Sprintf("Solution found in %d moves.", solution.MoveCount)))
	fmt.Fprintf(ui.out, "Place snake at %d, %d\n", solution.Start.X, solution.Start.Y)
	for ii, dir := range solution.Directions {
		fmt.Fprintf(ui.out, "%2d. %s\n", ii, dir)
	}
}

// PrintSteps prints the board after the snake is placed, and after each of the directions of the solution.
func (ui *UI) PrintSteps(board *Board, solution *searchers.Solution) error {
	b, err := Replay(board, solution.Start, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(ui.out, "\nPlace snake at %s:\n", solution.Start)
	ui.PrintBoard(b)
	for ii, dir := range solution.Directions {
		var cells int
		b, cells = b.Slide(dir)
		fmt.Fprintf(ui.out, "\n%2d. %s (%d cells, %d cherries left):\n", ii, dir, cells, b.CherryCount())
		ui.PrintBoard(b)
	}
	return nil
}

// PrintNoSolution prints the reason no solution was found.
func (ui *UI) PrintNoSolution(err error) {
	fmt.Fprintln(ui.out, "No solution found.")
	if err != nil && err != searchers.ErrNoSolution {
		fmt.Fprintf(ui.out, "(%v)\n", err)
	}
}
