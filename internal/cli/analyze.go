package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pablasso/meetmind/internal/config"
	"github.com/pablasso/meetmind/internal/demo"
	"github.com/pablasso/meetmind/internal/display"
	"github.com/pablasso/meetmind/internal/export"
	"github.com/pablasso/meetmind/internal/logging"
	"github.com/pablasso/meetmind/internal/render"
	"github.com/pablasso/meetmind/internal/session"
	"github.com/pablasso/meetmind/internal/tui"
	"github.com/pablasso/meetmind/internal/tui/views"
	"github.com/pablasso/meetmind/internal/upload"
	"github.com/spf13/cobra"
)

// Output formats for analyze.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
)

// textWidth is the wrap width of the text format.
const textWidth = 80

var (
	analyzeTab       string
	analyzeFormat    string
	analyzeExportDir string
	analyzeDemo      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <recording>",
	Short: "Analyze a recording and print the report",
	Long: `Upload a meeting recording, wait for the analysis and print one tab or the
whole report. The JSON format prints the document exactly as the export file
would contain it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTab, "tab", "all", "Tab to print: summary|todos|timeline|requirements|sentiment|all")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", FormatText, "Output format: text|html|json")
	analyzeCmd.Flags().StringVar(&analyzeExportDir, "export", "", "Also write meeting_analysis.json to this directory")
	analyzeCmd.Flags().StringVar(&analyzeDemo, "demo", "", "Use the built-in demo analyzer with this scenario: success|fail|malformed")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	tabs, err := parseTabs(analyzeTab)
	if err != nil {
		return err
	}
	if err := validateFormat(analyzeFormat); err != nil {
		return err
	}

	cfg, err := LoadConfig(serverOverride)
	if err != nil {
		return err
	}
	log, closeLog, err := OpenLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	analyzer, err := newAnalyzer(cfg, analyzeDemo, log)
	if err != nil {
		return err
	}

	file, err := upload.FileFromPath(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var status io.Writer = io.Discard
	if isatty.IsTerminal(os.Stderr.Fd()) {
		status = os.Stderr
	}

	sess, err := analyzeFile(ctx, analyzer, file, status, log, cfg)
	if err != nil {
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), sess, tabs, analyzeFormat); err != nil {
		return err
	}

	exportDir := analyzeExportDir
	if exportDir == "" {
		return nil
	}
	data, err := sess.Export()
	if err != nil {
		return err
	}
	path, err := export.Write(exportDir, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s\n", path)
	return nil
}

// newAnalyzer returns the demo analyzer when scenario is set, otherwise the
// HTTP client for cfg.ServerURL.
func newAnalyzer(cfg *config.Config, scenario string, log logging.Logger) (upload.Analyzer, error) {
	opts := tui.Options{Config: cfg, Logger: log}
	if scenario != "" {
		sc, err := demo.ParseScenario(scenario)
		if err != nil {
			return nil, err
		}
		opts.Demo = &tui.DemoOptions{Preset: demo.PresetQuick, Scenario: sc}
	}
	return tui.NewAnalyzer(opts)
}

// analyzeFile runs one upload through a session, drawing the status line on
// status. It returns the session holding the result, or the failure with
// its user-facing message.
func analyzeFile(ctx context.Context, analyzer upload.Analyzer, file upload.File, status io.Writer, log logging.Logger, cfg *config.Config) (*session.Session, error) {
	disp := display.New(status)

	sess := session.New(analyzer,
		session.WithLogger(log),
		session.WithResetDelay(cfg.ResetDelay),
		session.WithPhaseListener(func(from, to session.Phase) {
			switch to {
			case session.PhaseUploading:
				disp.UpdateStatus(session.StatusUploading)
			case session.PhaseProcessing:
				disp.UpdateStatus(session.StatusAnalyzing)
			}
		}),
	)

	disp.Start(file.Name, file.Size)
	disp.UpdateStatus(session.StatusUploading)
	_, err := sess.Submit(ctx, file)
	disp.Stop()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, errors.New("canceled")
		}
		return nil, errors.New(upload.Message(err))
	}
	return sess, nil
}

func parseTabs(value string) ([]render.Tab, error) {
	if strings.EqualFold(strings.TrimSpace(value), "all") {
		return render.Tabs, nil
	}
	tab, err := render.ParseTab(value)
	if err != nil {
		return nil, err
	}
	return []render.Tab{tab}, nil
}

func validateFormat(format string) error {
	switch format {
	case FormatText, FormatHTML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format %q (valid: text, html, json)", format)
	}
}

// writeReport prints tabs of the session's result in format. The JSON
// format always prints the whole document.
func writeReport(w io.Writer, sess *session.Session, tabs []render.Tab, format string) error {
	if format == FormatJSON {
		data, err := sess.Export()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	for i, tab := range tabs {
		view, ok := sess.RenderTab(tab)
		if !ok {
			return session.ErrNoResult
		}

		switch format {
		case FormatHTML:
			fragment, err := render.HTML(view)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", tab, err)
			}
			fmt.Fprintf(w, "<section id=\"tab-%s\">\n%s\n</section>\n", tab, fragment)
		default:
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n\n%s\n", tab.Title(), views.RenderTabView(view, textWidth))
		}
	}
	return nil
}
