package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/xvierd/tomato/internal/adapters/mcp"
	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/engine"
	"github.com/xvierd/tomato/internal/ports"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server communicates via stdio and exposes tools to read and drive the
timer and to query the session history. It shares the timer with any
other tomato process through the database.`,
	Annotations: map[string]string{detached: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := setupSignalHandler()

		var server ports.Server = mcp.NewServer(&checkpointTimer{}, app.history, Version)
		defer server.Stop()

		app.logger.Info("starting MCP server")
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}

// checkpointTimer serves every call from the stored checkpoint: it restores
// an engine, applies the call, settles any completion and writes the result
// back, so the call sees and leaves the state other processes share.
type checkpointTimer struct {
	mu sync.Mutex
}

func (t *checkpointTimer) do(op func(e *engine.Engine)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := newEngine()
	defer e.Close()
	op(e)
}

func (t *checkpointTimer) Start() { t.do((*engine.Engine).Start) }
func (t *checkpointTimer) Pause() { t.do((*engine.Engine).Pause) }
func (t *checkpointTimer) Reset() { t.do((*engine.Engine).Reset) }
func (t *checkpointTimer) Skip()  { t.do((*engine.Engine).Skip) }

func (t *checkpointTimer) Snapshot() domain.Snapshot {
	var snap domain.Snapshot
	t.do(func(e *engine.Engine) { snap = e.Snapshot() })
	return snap
}

func (t *checkpointTimer) Config() domain.TimerConfig {
	var cfg domain.TimerConfig
	t.do(func(e *engine.Engine) { cfg = e.Config() })
	return cfg
}

// SetConfig also writes the config file.
func (t *checkpointTimer) SetConfig(cfg domain.TimerConfig) {
	t.do(func(e *engine.Engine) { controller{e}.SetConfig(cfg) })
}

var _ ports.TimerController = (*checkpointTimer)(nil)
