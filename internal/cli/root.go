// Package cli implements the non-interactive meetmind commands.
package cli

import (
	"fmt"

	"github.com/pablasso/meetmind/internal/config"
	"github.com/pablasso/meetmind/internal/logging"
	"github.com/pablasso/meetmind/internal/version"
	"github.com/spf13/cobra"
)

var serverOverride string

var rootCmd = &cobra.Command{
	Use:   "meetmind",
	Short: "Meeting recording analysis client",
	Long: `MeetMind uploads a meeting recording to the analysis server and shows the
report: summary, action items, timeline, requirements and sentiment.

Run without arguments to start the interactive client.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "Analysis server URL (overrides config)")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(stubServerCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// LoadConfig loads the configuration and applies serverURL when set.
func LoadConfig(serverURL string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validating config: %w", err)
		}
	}
	return cfg, nil
}

// OpenLogger opens the log file configured in cfg.
func OpenLogger(cfg *config.Config) (logging.Logger, func() error, error) {
	return logging.Open(logging.Config{
		Level:      cfg.EffectiveLogLevel(),
		JSONFormat: cfg.LogJSON,
		File:       cfg.LogFile,
	})
}
