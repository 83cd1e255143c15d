package demo

import (
	"fmt"
	"strings"
	"time"
)

// Preset controls demo pacing.
type Preset string

const (
	PresetQuick  Preset = "quick"
	PresetMedium Preset = "medium"
	PresetSlow   Preset = "slow"
)

func ParsePreset(value string) (Preset, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(value))) {
	case PresetQuick, PresetMedium, PresetSlow:
		return Preset(strings.ToLower(strings.TrimSpace(value))), nil
	default:
		return "", fmt.Errorf("invalid demo preset %q (valid: quick, medium, slow)", value)
	}
}

// Config controls demo analyzer behavior.
type Config struct {
	Scenario Scenario

	// UploadDelay is spent before the request counts as sent.
	UploadDelay time.Duration

	// AnalyzeDelay is spent between sent and the outcome.
	AnalyzeDelay time.Duration
}

// NewConfig returns the pacing for preset with the given scenario.
func NewConfig(preset Preset, scenario Scenario) (Config, error) {
	cfg := Config{Scenario: scenario}
	switch preset {
	case PresetQuick:
		cfg.UploadDelay = 300 * time.Millisecond
		cfg.AnalyzeDelay = 700 * time.Millisecond
	case PresetMedium:
		cfg.UploadDelay = 1500 * time.Millisecond
		cfg.AnalyzeDelay = 4 * time.Second
	case PresetSlow:
		cfg.UploadDelay = 5 * time.Second
		cfg.AnalyzeDelay = 20 * time.Second
	default:
		return Config{}, fmt.Errorf("unknown demo preset %q", preset)
	}
	return cfg, nil
}
