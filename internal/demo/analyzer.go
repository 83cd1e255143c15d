// Package demo provides an in-process analyzer that replays a canned
// analysis, so the client can be exercised without a server.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pablasso/meetmind/internal/analysis"
	"github.com/pablasso/meetmind/internal/logging"
	"github.com/pablasso/meetmind/internal/upload"
)

// Analyzer implements upload.Analyzer from the embedded fixture.
type Analyzer struct {
	cfg    Config
	result *analysis.Result
	log    logging.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewAnalyzer loads the fixture and returns a demo analyzer.
func NewAnalyzer(cfg Config, log logging.Logger) (*Analyzer, error) {
	if cfg.Scenario == "" {
		cfg.Scenario = ScenarioSuccess
	}
	result, err := LoadResult()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Analyzer{cfg: cfg, result: result, log: log, sleep: sleepContext}, nil
}

// Analyze drains the recording, waits out the configured delays, and returns
// the outcome for the configured scenario.
func (a *Analyzer) Analyze(ctx context.Context, file upload.File, hooks upload.Hooks) (*analysis.Result, error) {
	if file.Open == nil {
		return nil, &upload.TransportError{Err: errors.New("no recording selected")}
	}

	src, err := file.Open()
	if err != nil {
		return nil, &upload.TransportError{Err: fmt.Errorf("failed to open recording: %w", err)}
	}
	n, err := io.Copy(io.Discard, src)
	src.Close()
	if err != nil {
		return nil, &upload.TransportError{Err: fmt.Errorf("failed to read recording: %w", err)}
	}

	if hooks.OnProgress != nil {
		hooks.OnProgress(n)
	}

	log := a.log.With(logging.F("file", file.Name), logging.F("scenario", string(a.cfg.Scenario)))
	log.Info("demo upload", logging.F("size", n))

	if err := a.sleep(ctx, a.cfg.UploadDelay); err != nil {
		return nil, &upload.TransportError{Err: err}
	}
	if hooks.OnSent != nil {
		hooks.OnSent()
	}
	if err := a.sleep(ctx, a.cfg.AnalyzeDelay); err != nil {
		return nil, &upload.TransportError{Err: err}
	}

	switch a.cfg.Scenario {
	case ScenarioFail:
		log.Info("demo failure")
		return nil, &upload.ServerError{Status: http.StatusInternalServerError, Message: FailMessage}
	case ScenarioMalformed:
		_, err := analysis.Decode([]byte(`["not", "an", "analysis"]`))
		return nil, &upload.DecodeError{Err: err}
	default:
		log.Info("demo analysis ready")
		return a.result, nil
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
