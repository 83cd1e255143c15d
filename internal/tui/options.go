package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/meetmind/internal/config"
	"github.com/pablasso/meetmind/internal/demo"
	"github.com/pablasso/meetmind/internal/logging"
	"github.com/pablasso/meetmind/internal/session"
	"github.com/pablasso/meetmind/internal/upload"
)

// Options configures TUI startup behavior.
type Options struct {
	Config    *config.Config
	Logger    logging.Logger
	Demo      *DemoOptions
	StartDir  string // directory the file picker opens in; defaults to cwd
	ExportDir string
}

// DemoOptions configure demo mode when starting the TUI.
type DemoOptions struct {
	Preset   demo.Preset
	Scenario demo.Scenario
}

// NewAnalyzer returns the analyzer selected by opts: the demo analyzer in
// demo mode, otherwise the HTTP client for the configured server.
func NewAnalyzer(opts Options) (upload.Analyzer, error) {
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	if opts.Demo != nil {
		cfg, err := demo.NewConfig(opts.Demo.Preset, opts.Demo.Scenario)
		if err != nil {
			return nil, err
		}
		return demo.NewAnalyzer(cfg, log)
	}

	if opts.Config == nil {
		return nil, fmt.Errorf("no configuration")
	}
	return upload.NewHTTPAnalyzer(opts.Config.ServerURL,
		upload.WithTimeout(opts.Config.Timeout),
		upload.WithLogger(log),
	), nil
}

// Run starts the TUI application.
func Run(opts Options) error {
	analyzer, err := NewAnalyzer(opts)
	if err != nil {
		return err
	}

	sessOpts := []session.Option{}
	if opts.Logger != nil {
		sessOpts = append(sessOpts, session.WithLogger(opts.Logger))
	}
	if opts.Config != nil {
		sessOpts = append(sessOpts, session.WithResetDelay(opts.Config.ResetDelay))
		if opts.ExportDir == "" {
			opts.ExportDir = opts.Config.ExportDir
		}
	}

	m := NewModel(session.New(analyzer, sessOpts...), opts)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	m.cancel()
	return err
}
