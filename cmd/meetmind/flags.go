package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/pablasso/meetmind/internal/demo"
	"github.com/pablasso/meetmind/internal/tui"
)

type parseResult struct {
	Options     tui.Options
	ServerURL   string
	ShowHelp    bool
	ShowVersion bool
	HelpText    string
}

func parseArgs(args []string) (parseResult, error) {
	fs := flag.NewFlagSet("meetmind", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	demoEnabled := fs.Bool("demo", false, "Use the built-in demo analyzer instead of a server")
	demoPreset := fs.String("demo-preset", string(demo.PresetMedium), "Demo preset: quick|medium|slow")
	demoScenario := fs.String("demo-scenario", string(demo.ScenarioSuccess), "Demo scenario: success|fail|malformed")
	serverURL := fs.String("server", "", "Analysis server URL (overrides config)")
	startDir := fs.String("dir", "", "Directory the file picker opens in")
	exportDir := fs.String("export-dir", "", "Directory meeting_analysis.json is written to")
	showVersion := fs.Bool("version", false, "Show version information")
	showVersionShort := fs.Bool("v", false, "Show version information")

	usage := func() string {
		var b strings.Builder
		fmt.Fprintln(&b, "Usage: meetmind [flags]")
		fmt.Fprintln(&b, "       meetmind <command> [flags]")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "MeetMind analyzes meeting recordings: summary, action items, timeline,")
		fmt.Fprintln(&b, "requirements and sentiment.")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "Commands: analyze, stub-server, config, version (see meetmind help)")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "Flags:")
		fs.SetOutput(&b)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
		return b.String()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return parseResult{ShowHelp: true, HelpText: usage()}, nil
		}
		return parseResult{}, fmt.Errorf("%v\n\n%s", err, usage())
	}

	if fs.NArg() > 0 {
		return parseResult{}, fmt.Errorf("positional args are not supported\n\n%s", usage())
	}

	if *showVersion || *showVersionShort {
		return parseResult{ShowVersion: true}, nil
	}

	var presetProvided bool
	var scenarioProvided bool
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "demo-preset":
			presetProvided = true
		case "demo-scenario":
			scenarioProvided = true
		}
	})

	if !*demoEnabled && (presetProvided || scenarioProvided) {
		return parseResult{}, fmt.Errorf("--demo-preset/--demo-scenario require --demo\n\n%s", usage())
	}

	res := parseResult{
		ServerURL: *serverURL,
		Options: tui.Options{
			StartDir:  *startDir,
			ExportDir: *exportDir,
		},
	}
	if !*demoEnabled {
		return res, nil
	}

	preset, err := demo.ParsePreset(*demoPreset)
	if err != nil {
		return parseResult{}, fmt.Errorf("%v\n\n%s", err, usage())
	}

	scenario, err := demo.ParseScenario(*demoScenario)
	if err != nil {
		return parseResult{}, fmt.Errorf("%v\n\n%s", err, usage())
	}

	res.Options.Demo = &tui.DemoOptions{
		Preset:   preset,
		Scenario: scenario,
	}
	return res, nil
}
