package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pablasso/meetmind/internal/cli"
	"github.com/pablasso/meetmind/internal/tui"
	"github.com/pablasso/meetmind/internal/version"
)

// subcommands are routed to the CLI even when preceded by flags.
var subcommands = map[string]bool{
	"analyze":     true,
	"stub-server": true,
	"config":      true,
	"version":     true,
	"help":        true,
	"completion":  true,
}

func main() {
	// No args or only flags launch the TUI; anything else is a CLI command
	if !launchesTUI(os.Args[1:]) {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	res, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if res.ShowHelp {
		fmt.Fprint(os.Stdout, res.HelpText)
		return
	}
	if res.ShowVersion {
		fmt.Println(version.String())
		return
	}

	if err := runTUI(res); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func launchesTUI(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if !strings.HasPrefix(args[0], "-") {
		return false
	}
	for _, arg := range args {
		if subcommands[arg] {
			return false
		}
	}
	return true
}

func runTUI(res parseResult) error {
	cfg, err := cli.LoadConfig(res.ServerURL)
	if err != nil {
		return err
	}
	log, closeLog, err := cli.OpenLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := res.Options
	opts.Config = cfg
	opts.Logger = log
	return tui.Run(opts)
}
