// Package server implements the web preview: an echo application that
// lists the scene presets, streams progressive renders over SSE,
// answers point inspection queries and reports system load.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ChiaraGiaca/cg-projects/log"
	"github.com/ChiaraGiaca/cg-projects/pkg/scene"
)

var logger = log.New("web")

// Server serves the web preview.
type Server struct {
	echo *echo.Echo
}

// New builds the server with all routes registered.
func New() *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(corsMiddleware)

	s := &Server{echo: e}
	e.GET("/", s.handleIndex)
	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/inspect", s.handleInspect)
	e.GET("/api/system", s.handleSystem)
	return s
}

// Start listens on addr until Shutdown or a listener error.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP dispatches to the echo router, so the server doubles as a
// plain http.Handler in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, indexHTML)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the scene presets for the picker.
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.List())
}
