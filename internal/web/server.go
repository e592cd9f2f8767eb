// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/web/server.go
// Summary: HTTP API over a headless desktop session.
// Usage: deskfolio serve mounts Handler on the configured address. Every
//   request runs on the session loop through Runner.Do.
// Notes: Window operations on unknown ids are no-ops and still answer 200
//   with the current state.

package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/framegrace/deskfolio/apps/catalog"
	"github.com/framegrace/deskfolio/internal/logging"
	"github.com/framegrace/deskfolio/internal/shell"
	"github.com/framegrace/deskfolio/paint"
	"github.com/framegrace/deskfolio/render"
)

// Session is the part of shell.Runner the server needs.
type Session interface {
	Do(ctx context.Context, fn func(*shell.Shell) error) error
}

var _ Session = (*shell.Runner)(nil)

// Server serves one session.
type Server struct {
	session Session
	log     zerolog.Logger
	engine  *gin.Engine
}

type openRequest struct {
	App string `json:"app" binding:"required"`
}

var page = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>deskfolio</title>
<meta http-equiv="refresh" content="2">
<style>body{background:#008080;color:#fff;font-family:monospace}pre{background:#000;padding:8px;display:inline-block}</style>
</head>
<body>
<h1>deskfolio</h1>
<img src="/screen.png" alt="desktop">
<pre>{{.Screen}}</pre>
<ul>{{range .Windows}}<li>{{.Title}} ({{.ID}}){{if .Active}} *{{end}}{{if .Minimized}} minimized{{end}}</li>{{end}}</ul>
</body>
</html>`))

// New builds the gin engine for session.
func New(session Session, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		session: session,
		log:     logging.Component(log, "web"),
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.engine.SetHTMLTemplate(page)
	s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() {
	r := s.engine
	r.GET("/", s.index)
	r.GET("/screen.png", s.screenshot)
	r.GET("/screen.txt", s.screenText)

	api := r.Group("/api")
	api.GET("/apps", func(c *gin.Context) { c.JSON(http.StatusOK, catalog.Apps()) })
	api.GET("/state", s.state)
	api.GET("/windows", s.windows)
	api.POST("/windows", s.open)
	api.POST("/windows/:id/:action", s.windowAction)
	api.POST("/notes", s.addNote)
	api.POST("/notes/peel", s.peelNote)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

// fail maps session errors to HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrUnknownApp):
		status = http.StatusNotFound
	case errors.Is(err, shell.ErrUnknownAction):
		status = http.StatusBadRequest
	case errors.Is(err, shell.ErrStopped), errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// snapshot runs fn and then captures the session state.
func (s *Server) snapshot(c *gin.Context, fn func(*shell.Shell) error) (shell.State, error) {
	var st shell.State
	err := s.session.Do(c.Request.Context(), func(sh *shell.Shell) error {
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

func (s *Server) render(c *gin.Context) (*paint.Buffer, shell.State, error) {
	var (
		buf *paint.Buffer
		st  shell.State
	)
	err := s.session.Do(c.Request.Context(), func(sh *shell.Shell) error {
		buf = sh.Render()
		st = sh.State()
		return nil
	})
	return buf, st, err
}

func (s *Server) index(c *gin.Context) {
	buf, st, err := s.render(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index", gin.H{"Screen": buf.String(), "Windows": st.Windows})
}

func (s *Server) screenshot(c *gin.Context) {
	buf, _, err := s.render(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := render.EncodePNG(c.Writer, buf); err != nil {
		s.log.Error().Err(err).Msg("encode png")
	}
}

func (s *Server) screenText(c *gin.Context) {
	buf, _, err := s.render(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.String(http.StatusOK, "%s\n", buf.String())
}

func (s *Server) state(c *gin.Context) {
	st, err := s.snapshot(c, nil)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) windows(c *gin.Context) {
	st, err := s.snapshot(c, nil)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st.Windows)
}

func (s *Server) open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("malformed request: %v", err)})
		return
	}
	st, err := s.snapshot(c, func(sh *shell.Shell) error {
		return sh.OpenApp(c.Request.Context(), req.App)
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.log.Info().Str("app", req.App).Msg("app opened over http")
	c.JSON(http.StatusOK, st)
}

func (s *Server) windowAction(c *gin.Context) {
	id, action := c.Param("id"), c.Param("action")
	st, err := s.snapshot(c, func(sh *shell.Shell) error {
		return sh.WindowAction(id, action)
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) addNote(c *gin.Context) {
	var info shell.NoteInfo
	err := s.session.Do(c.Request.Context(), func(sh *shell.Shell) error {
		info = shell.NoteInfoOf(sh.AddNote())
		return nil
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (s *Server) peelNote(c *gin.Context) {
	var (
		id string
		ok bool
	)
	err := s.session.Do(c.Request.Context(), func(sh *shell.Shell) error {
		id, ok = sh.PeelNote()
		return nil
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "no note can be peeled"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListenAndServe serves on addr until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", addr).Msg("http server started")

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.log.Info().Msg("http server stopped")
	return nil
}
