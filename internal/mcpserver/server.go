// Package mcpserver exposes the puzzle solver as MCP (Model Context Protocol) tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/janpfeifer/snakeGo/internal/searchers"
	"github.com/janpfeifer/snakeGo/internal/solutions"
	. "github.com/janpfeifer/snakeGo/internal/state"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Server holds the MCP server and the configuration used to solve puzzles.
type Server struct {
	mcpServer     *server.MCPServer
	defaultConfig string
	store         *solutions.Store
}

// New creates the MCP server with its tools registered. Puzzles are solved with defaultConfig, unless the
// tool call sets another one. The store (used as a solutions cache) can be nil.
func New(defaultConfig string, store *solutions.Store) *Server {
	s := &Server{defaultConfig: defaultConfig, store: store}
	s.mcpServer = server.NewMCPServer(
		"Snake Cherry Puzzle Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snake Cherry Puzzle Solver - MCP Interface

A puzzle is a grid of text: 'r' is a rock, any other character a cherry. The snake is placed on a cherry
and slides in one direction (Up, Down, Left, Right) until blocked by the border, a rock or its own body,
eating every cherry on the way. The goal is to eat all cherries.

AVAILABLE TOOLS:
- solve_puzzle: find where to place the snake and the shortest list of moves from there.
- replay_solution: apply a list of moves to a puzzle and show the resulting board.`),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Solve a snake cherry puzzle, returning the start position and directions as JSON",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle grid, one row per line: 'r' for rocks, 'c' for cherries",
				},
				"config": map[string]interface{}{
					"type":        "string",
					"description": "Searcher configuration (optional), e.g. \"bfs,global,max_time=10s\"",
				},
			},
			Required: []string{"puzzle"},
		},
	}, s.handleSolvePuzzle)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "replay_solution",
		Description: "Place the snake on the puzzle and apply the given directions, returning the final board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle grid, one row per line: 'r' for rocks, 'c' for cherries",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Column where the snake is placed, starting at 0",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Row where the snake is placed, starting at 0",
				},
				"directions": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string", "enum": DirectionStrings()},
					"description": "Directions to slide the snake, in order",
				},
			},
			Required: []string{"puzzle", "x", "y", "directions"},
		},
	}, s.handleReplaySolution)
}

// ServeStdio serves the MCP protocol over stdin/stdout, until stdin is closed.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// solveResponse is the JSON returned by solve_puzzle.
type solveResponse struct {
	Solved   bool                `json:"solved"`
	Solution *searchers.Solution `json:"solution,omitempty"`
	Reason   string              `json:"reason,omitempty"`
	Cached   bool                `json:"cached,omitempty"`
}

func (s *Server) handleSolvePuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	puzzle, _ := args["puzzle"].(string)
	config, _ := args["config"].(string)
	if strings.TrimSpace(config) == "" {
		config = s.defaultConfig
	}

	solver, err := solutions.NewSolver(config, s.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid config %q: %v", config, err)), nil
	}
	result, err := solver.Solve(ctx, puzzle)
	if result == nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid puzzle: %v", err)), nil
	}
	response := solveResponse{Cached: result.Cached}
	if err != nil {
		if !errors.Is(err, searchers.ErrNoSolution) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		response.Reason = err.Error()
	} else {
		response.Solved = true
		response.Solution = result.Solution
	}
	klog.V(1).Infof("solve_puzzle(config=%q): solved=%v cached=%v", config, response.Solved, response.Cached)
	data, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleReplaySolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	puzzle, _ := args["puzzle"].(string)
	// JSON numbers are decoded as float64.
	x, okX := args["x"].(float64)
	y, okY := args["y"].(float64)
	if !okX || !okY || x != math.Trunc(x) || y != math.Trunc(y) {
		return mcp.NewToolResultError(fmt.Sprintf("x and y must be integers, got x=%v, y=%v", args["x"], args["y"])), nil
	}
	rawDirections, _ := args["directions"].([]interface{})
	directions := make([]Direction, 0, len(rawDirections))
	for _, raw := range rawDirections {
		name, _ := raw.(string)
		dir, err := DirectionString(name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid direction %q, valid values are %v", raw, DirectionStrings())), nil
		}
		directions = append(directions, dir)
	}

	board, err := ParsePuzzle(puzzle)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid puzzle: %v", err)), nil
	}
	final, err := Replay(board, Pos{X: int(x), Y: int(y)}, directions)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result := fmt.Sprintf("Final board:\n%s\n\nCherries left: %d\n", final, final.CherryCount())
	if final.IsComplete() {
		result += "All cherries eaten: puzzle solved!\n"
	}
	return mcp.NewToolResultText(result), nil
}
