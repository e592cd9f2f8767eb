// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/mcpserver/server.go
// Summary: MCP tool server over a headless desktop session.
// Usage: deskfolio mcp serves these tools over stdio or streamable HTTP.
// Notes: Tool failures come back as error results; the transport only
//   fails when the session itself is gone.

package mcpserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/framegrace/deskfolio/apps/catalog"
	"github.com/framegrace/deskfolio/internal/logging"
	"github.com/framegrace/deskfolio/internal/shell"
	"github.com/framegrace/deskfolio/paint"
	"github.com/framegrace/deskfolio/render"
)

// Transports accepted by Serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "streamable-http"
)

// Session is the part of shell.Runner the tools need.
type Session interface {
	Do(ctx context.Context, fn func(*shell.Shell) error) error
}

// Server exposes desktop operations as MCP tools.
type Server struct {
	session Session
	log     zerolog.Logger
	mcp     *server.MCPServer
}

// New registers every tool for session.
func New(session Session, version string, log zerolog.Logger) *Server {
	s := &Server{
		session: session,
		log:     logging.Component(log, "mcp"),
		mcp:     server.NewMCPServer("deskfolio", version),
	}
	s.registerTools()
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// Serve runs the chosen transport until ctx ends.
func (s *Server) Serve(ctx context.Context, transport string, port int, in io.Reader, out io.Writer) error {
	switch transport {
	case TransportStdio:
		s.log.Info().Msg("mcp server started on stdio")
		return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
	case TransportHTTP:
		httpServer := server.NewStreamableHTTPServer(s.mcp)
		errc := make(chan error, 1)
		go func() { errc <- httpServer.Start(fmt.Sprintf(":%d", port)) }()
		s.log.Info().Int("port", port).Msg("mcp server started on http")
		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
			return httpServer.Shutdown(context.Background())
		}
	default:
		return fmt.Errorf("unsupported transport: %s (use %s or %s)", transport, TransportStdio, TransportHTTP)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List open desktop windows in z order, bottom first, with the active window flagged"),
		),
		s.handleListWindows,
	)
	s.mcp.AddTool(
		mcp.NewTool("open_app",
			mcp.WithDescription("Open a desktop app, or raise it if already open"),
			mcp.WithString("app", mcp.Required(), mcp.Description("App id: projects, resume, github, spotify, about or terminal")),
		),
		s.handleOpenApp,
	)
	s.mcp.AddTool(
		mcp.NewTool("window_action",
			mcp.WithDescription("Apply close, minimize, maximize, restore or focus to an open window"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Window id")),
			mcp.WithString("action", mcp.Required(), mcp.Description("close, minimize, maximize, restore or focus")),
		),
		s.handleWindowAction,
	)
	s.mcp.AddTool(
		mcp.NewTool("add_note",
			mcp.WithDescription("Add a sticky note on top of the note stack"),
		),
		s.handleAddNote,
	)
	s.mcp.AddTool(
		mcp.NewTool("peel_note",
			mcp.WithDescription("Peel the topmost sticky note so it falls off the stack"),
		),
		s.handlePeelNote,
	)
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Render the desktop as a PNG image, or as plain text"),
			mcp.WithString("format", mcp.Description("png (default) or text")),
		),
		s.handleScreenshot,
	)
}

// stringParam reads a string argument, falling back to def.
func stringParam(params map[string]any, key, def string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}

func requireParam(params map[string]any, key string) (string, error) {
	v := stringParam(params, key, "")
	if v == "" {
		return "", fmt.Errorf("%s parameter is required", key)
	}
	return v, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// sessionError keeps transport errors for a dead session and turns the
// rest into tool errors.
func sessionError(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, shell.ErrStopped) {
		return nil, err
	}
	return mcp.NewToolResultError(err.Error()), nil
}

func (s *Server) state(ctx context.Context, fn func(*shell.Shell) error) (shell.State, error) {
	var st shell.State
	err := s.session.Do(ctx, func(sh *shell.Shell) error {
		if fn != nil {
			if err := fn(sh); err != nil {
				return err
			}
		}
		st = sh.State()
		return nil
	})
	return st, err
}

func (s *Server) handleListWindows(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.state(ctx, nil)
	if err != nil {
		return sessionError(err)
	}
	return jsonResult(st.Windows)
}

func (s *Server) handleOpenApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app, err := requireParam(request.GetArguments(), "app")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st, err := s.state(ctx, func(sh *shell.Shell) error { return sh.OpenApp(ctx, app) })
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownApp) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown app %q", app)), nil
		}
		return sessionError(err)
	}
	s.log.Info().Str("app", app).Msg("app opened over mcp")
	return jsonResult(st)
}

func (s *Server) handleWindowAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id, err := requireParam(params, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action, err := requireParam(params, "action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st, err := s.state(ctx, func(sh *shell.Shell) error { return sh.WindowAction(id, action) })
	if err != nil {
		return sessionError(err)
	}
	return jsonResult(st)
}

func (s *Server) handleAddNote(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var info shell.NoteInfo
	err := s.session.Do(ctx, func(sh *shell.Shell) error {
		info = shell.NoteInfoOf(sh.AddNote())
		return nil
	})
	if err != nil {
		return sessionError(err)
	}
	return jsonResult(info)
}

func (s *Server) handlePeelNote(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		id string
		ok bool
	)
	err := s.session.Do(ctx, func(sh *shell.Shell) error {
		id, ok = sh.PeelNote()
		return nil
	})
	if err != nil {
		return sessionError(err)
	}
	if !ok {
		return mcp.NewToolResultError("no note can be peeled"), nil
	}
	return mcp.NewToolResultText(id), nil
}

func (s *Server) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := stringParam(request.GetArguments(), "format", "png")
	var buf *paint.Buffer
	err := s.session.Do(ctx, func(sh *shell.Shell) error {
		buf = sh.Render()
		return nil
	})
	if err != nil {
		return sessionError(err)
	}
	switch format {
	case "text":
		return mcp.NewToolResultText(buf.String()), nil
	case "png":
		var out bytes.Buffer
		if err := render.EncodePNG(&out, buf); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.ImageContent{
					Type:     "image",
					Data:     base64.StdEncoding.EncodeToString(out.Bytes()),
					MIMEType: "image/png",
				},
			},
		}, nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q (use png or text)", format)), nil
	}
}
