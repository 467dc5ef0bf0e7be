// snake-mcp serves the snake cherry puzzle solver as MCP (Model Context Protocol) tools over stdio.
//
// Logs go to stderr, since stdout is used by the protocol.
package main

import (
	"flag"

	"github.com/janpfeifer/must"
	"github.com/janpfeifer/snakeGo/internal/mcpserver"
	"github.com/janpfeifer/snakeGo/internal/searchers"
	_ "github.com/janpfeifer/snakeGo/internal/searchers/bfs"
	"github.com/janpfeifer/snakeGo/internal/solutions"
	"k8s.io/klog/v2"
)

var (
	flagConfig = flag.String("config", searchers.DefaultConfig+",max_time=30s",
		"Default searcher configuration, used when the tool call doesn't set one.")
	flagCache = flag.String("cache", "", "If set, path to a SQLite database used to cache solutions.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Validate the default configuration early.
	must.M1(searchers.New(*flagConfig))

	var store *solutions.Store
	if *flagCache != "" {
		store = must.M1(solutions.Open(*flagCache))
		defer func() { _ = store.Close() }()
	}
	s := mcpserver.New(*flagConfig, store)
	klog.V(1).Infof("Serving MCP over stdio (config=%q)", *flagConfig)
	if err := s.ServeStdio(); err != nil {
		klog.Errorf("MCP server failed: %+v", err)
	}
}
