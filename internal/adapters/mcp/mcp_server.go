// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/ports"
)

// History is the read side of the session log used by the server.
type History interface {
	Recent(ctx context.Context, limit int) ([]domain.SessionRecord, error)
	Today(ctx context.Context) (*domain.DailyStats, error)
}

// DefaultHistoryLimit is how many sessions get_history returns by default.
const DefaultHistoryLimit = 10

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server  *server.MCPServer
	timer   ports.TimerController
	history History
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(timer ports.TimerController, history History, version string) *Server {
	s := &Server{
		timer:   timer,
		history: history,
	}

	s.server = server.NewMCPServer(
		"tomato",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_timer",
			mcp.WithDescription("Get the current timer: mode, remaining time, progress and today's stats"),
		),
		s.handleGetTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"start_timer",
			mcp.WithDescription("Start or resume the countdown of the current session"),
		),
		s.control(func() { s.timer.Start() }),
	)

	s.server.AddTool(
		mcp.NewTool(
			"pause_timer",
			mcp.WithDescription("Pause the countdown, keeping the remaining time"),
		),
		s.control(func() { s.timer.Pause() }),
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset_timer",
			mcp.WithDescription("Stop the timer and refill the current session to its full length"),
		),
		s.control(func() { s.timer.Reset() }),
	)

	s.server.AddTool(
		mcp.NewTool(
			"skip_session",
			mcp.WithDescription("Abandon the current session and move to the next mode without starting it"),
		),
		s.control(func() { s.timer.Skip() }),
	)

	historyTool := mcp.NewTool(
		"get_history",
		mcp.WithDescription("List recently finished or skipped sessions, newest first"),
		mcp.WithNumber(
			"limit",
			mcp.Description(fmt.Sprintf("Maximum number of sessions to return (default: %d)", DefaultHistoryLimit)),
		),
	)
	s.server.AddTool(historyTool, s.handleGetHistory)

	durationTool := mcp.NewTool(
		"set_duration",
		mcp.WithDescription(fmt.Sprintf("Set the length of a session kind in minutes (%d-%d)", domain.MinMinutes, domain.MaxMinutes)),
		mcp.WithString(
			"mode",
			mcp.Required(),
			mcp.Description("Which session length to change"),
			mcp.Enum(string(domain.ModeFocus), string(domain.ModeShortBreak), string(domain.ModeLongBreak)),
		),
		mcp.WithNumber(
			"minutes",
			mcp.Required(),
			mcp.Description("New length in whole minutes; out-of-range values are clamped"),
		),
	)
	s.server.AddTool(durationTool, s.handleSetDuration)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	defer s.cancel()

	stdio := server.NewStdioServer(s.server)
	if err := stdio.Listen(s.ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

var _ ports.Server = (*Server)(nil)

// control wraps a timer operation as a tool handler that reports the
// resulting timer.
func (s *Server) control(op func()) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		op()
		return jsonResult(timerJSON(s.timer.Snapshot()))
	}
}

// handleGetTimer handles the get_timer tool.
func (s *Server) handleGetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := timerJSON(s.timer.Snapshot())

	cfg := s.timer.Config()
	result["durations"] = map[string]interface{}{
		string(domain.ModeFocus):      cfg.Minutes(domain.ModeFocus),
		string(domain.ModeShortBreak): cfg.Minutes(domain.ModeShortBreak),
		string(domain.ModeLongBreak):  cfg.Minutes(domain.ModeLongBreak),
	}

	if s.history != nil {
		stats, err := s.history.Today(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get today's stats: %w", err)
		}
		result["today_stats"] = map[string]interface{}{
			"focus_sessions":   stats.FocusSessions,
			"breaks_taken":     stats.BreaksTaken,
			"skipped_sessions": stats.SkippedSessions,
			"total_focus_time": stats.TotalFocusTime.String(),
		}
	}

	return jsonResult(result)
}

// handleGetHistory handles the get_history tool.
func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.history == nil {
		return mcp.NewToolResultError("session history is not available"), nil
	}

	limit := request.GetInt("limit", DefaultHistoryLimit)
	if limit <= 0 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	records, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	sessions := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		data := map[string]interface{}{
			"id":       rec.ID,
			"mode":     string(rec.Mode),
			"outcome":  string(rec.Outcome),
			"planned":  rec.Planned.String(),
			"elapsed":  rec.Elapsed.String(),
			"ended_at": rec.EndedAt.Format(time.RFC3339),
		}
		if rec.GitBranch != "" {
			data["git_branch"] = rec.GitBranch
		}
		if rec.GitCommit != "" {
			data["git_commit"] = rec.GitCommit
		}
		sessions = append(sessions, data)
	}

	return jsonResult(map[string]interface{}{
		"sessions":    sessions,
		"total_count": len(sessions),
	})
}

// handleSetDuration handles the set_duration tool.
func (s *Server) handleSetDuration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("mode")
	if err != nil {
		return mcp.NewToolResultError("mode is required: " + err.Error()), nil
	}
	mode, err := domain.ParseMode(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	minutes, err := request.RequireInt("minutes")
	if err != nil {
		return mcp.NewToolResultError("minutes is required: " + err.Error()), nil
	}

	cfg := s.timer.Config()
	cfg.SetMinutes(mode, minutes)
	s.timer.SetConfig(cfg)

	result := timerJSON(s.timer.Snapshot())
	result["changed"] = map[string]interface{}{
		"mode":    string(mode),
		"minutes": cfg.Minutes(mode),
	}
	return jsonResult(result)
}

func timerJSON(snap domain.Snapshot) map[string]interface{} {
	return map[string]interface{}{
		"mode":              string(snap.Mode),
		"label":             snap.Mode.Label(),
		"display":           snap.Display,
		"remaining_seconds": snap.Remaining,
		"total_seconds":     snap.Total,
		"progress":          snap.Progress,
		"running":           snap.Running,
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
