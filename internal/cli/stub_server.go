package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pablasso/meetmind/internal/demo"
	"github.com/pablasso/meetmind/internal/logging"
	"github.com/pablasso/meetmind/internal/stubserver"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var (
	stubAddr       string
	stubFail       string
	stubFailStatus int
	stubDelay      time.Duration
	stubDocument   string
	stubBodyLimit  string
)

var stubServerCmd = &cobra.Command{
	Use:   "stub-server",
	Short: "Run a local analysis server that returns a fixed report",
	Long: `Serve POST /api/upload with a fixed analysis document so the client can be
exercised without the real transcription and analysis backend.

By default the built-in sample report is returned. Use --document to serve
your own JSON file, or --fail to make every upload fail.`,
	Args: cobra.NoArgs,
	RunE: runStubServer,
}

func init() {
	stubServerCmd.Flags().StringVar(&stubAddr, "addr", ":8000", "Listen address")
	stubServerCmd.Flags().StringVar(&stubFail, "fail", "", "Fail every upload with this error message")
	stubServerCmd.Flags().IntVar(&stubFailStatus, "fail-status", 500, "HTTP status used with --fail")
	stubServerCmd.Flags().DurationVar(&stubDelay, "delay", 0, "Simulated analysis time per upload")
	stubServerCmd.Flags().StringVar(&stubDocument, "document", "", "Serve this analysis JSON file instead of the sample")
	stubServerCmd.Flags().StringVar(&stubBodyLimit, "body-limit", "1G", "Maximum upload size")
}

func runStubServer(cmd *cobra.Command, args []string) error {
	doc, err := stubDocumentBytes(stubDocument)
	if err != nil {
		return err
	}

	// The stub has no TUI, so logs go to stderr.
	log := logging.New(os.Stderr, logging.LevelInfo, false)

	srv, err := stubserver.New(stubserver.Config{
		Document:    doc,
		FailMessage: stubFail,
		FailStatus:  stubFailStatus,
		Delay:       stubDelay,
		BodyLimit:   stubBodyLimit,
	}, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(stubAddr)
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "Stub server listening on %s (Ctrl+C to stop)\n", stubAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop stub server: %w", err)
	}
	return <-errCh
}

// stubDocumentBytes reads path, or returns the built-in sample when path is
// empty.
func stubDocumentBytes(path string) ([]byte, error) {
	if path == "" {
		return demo.Document()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}
