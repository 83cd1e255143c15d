// Package stubserver serves a canned analysis for local development and
// tests. It implements the upload endpoint contract without doing any
// transcription or inference.
package stubserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pablasso/meetmind/internal/analysis"
	"github.com/pablasso/meetmind/internal/logging"
	"github.com/pablasso/meetmind/internal/upload"
)

// Config controls the stub's responses.
type Config struct {
	// Document is returned on success. It must decode as an analysis.
	Document []byte

	// FailMessage, when set, makes every upload fail with this error.
	FailMessage string

	// FailStatus is the status used with FailMessage (default 500).
	FailStatus int

	// Delay simulates analysis time.
	Delay time.Duration

	// BodyLimit caps the upload size, in echo's notation (e.g. "500M").
	BodyLimit string
}

// errorResponse is the failure body of the upload endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

// Server is the stub analysis server.
type Server struct {
	echo *echo.Echo
	cfg  Config
	log  logging.Logger
}

// New creates a stub server. It validates the configured document up front
// so that a broken fixture fails at startup rather than per request.
func New(cfg Config, log logging.Logger) (*Server, error) {
	if cfg.FailMessage == "" {
		if _, err := analysis.Decode(cfg.Document); err != nil {
			return nil, fmt.Errorf("invalid stub document: %w", err)
		}
	}
	if cfg.FailStatus == 0 {
		cfg.FailStatus = http.StatusInternalServerError
	}
	if cfg.BodyLimit == "" {
		cfg.BodyLimit = "1G"
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	s := &Server{echo: e, cfg: cfg, log: log}

	api := e.Group("/api")
	api.POST("/upload", s.handleUpload)
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.log.Info("stub server listening", logging.F("addr", addr))
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleUpload(c echo.Context) error {
	file, err := c.FormFile(upload.FormField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file provided")
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	n, err := io.Copy(io.Discard, src)
	if err != nil {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}

	log := s.log.With(
		logging.F("file", file.Filename),
		logging.F("size", n),
		logging.F("content_type", file.Header.Get("Content-Type")),
		logging.F("request_id", c.Request().Header.Get("X-Request-ID")),
	)
	log.Info("recording received")

	if s.cfg.Delay > 0 {
		select {
		case <-time.After(s.cfg.Delay):
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}

	if s.cfg.FailMessage != "" {
		log.Warn("failing upload as configured")
		return c.JSON(s.cfg.FailStatus, errorResponse{Error: s.cfg.FailMessage})
	}

	return c.JSONBlob(http.StatusOK, s.cfg.Document)
}

// errorHandler writes every error as {"error": "..."}, matching the upload
// endpoint's failure body.
func errorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			message = fmt.Sprintf("%v", he.Message)
		}

		log.Error("request failed", logging.F("path", c.Path()), logging.F("status", status), logging.Err(err))
		if err := c.JSON(status, errorResponse{Error: message}); err != nil {
			log.Error("failed to write error response", logging.Err(err))
		}
	}
}
