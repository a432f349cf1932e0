// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Flags override the loaded configuration; --print and --search select print mode

package main

import (
	"flag"

	"github.com/mauromedda/pleroterm/internal/config"
	"github.com/mauromedda/pleroterm/internal/mode/print"
)

type cliArgs struct {
	config   string
	instance string
	timeline string
	print    bool
	search   string
	format   string
	stream   bool
	theme    string
	verbose  bool
	logFile  string
	version  bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.config, "config", "", "Config file overriding ~/.pleroterm/config.{json,yaml}")
	flag.StringVar(&args.instance, "instance", "", "Instance URL (e.g., https://pleroma.example)")
	flag.StringVar(&args.timeline, "timeline", "", "Timeline to open: home, local or public")
	flag.BoolVar(&args.print, "print", false, "Print one page of the timeline and exit")
	flag.StringVar(&args.search, "search", "", "Print accounts and statuses matching a query and exit")
	flag.StringVar(&args.format, "format", print.FormatText, "Print mode output format: text or json")
	flag.BoolVar(&args.stream, "stream", false, "Follow the streaming API for new statuses")
	flag.StringVar(&args.theme, "theme", "", "Built-in theme name, theme file name, or path")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.StringVar(&args.logFile, "log-file", "", "Log file used while the terminal is in use")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// printMode reports whether the run writes to stdout instead of taking
// over the terminal.
func (a cliArgs) printMode() bool {
	return a.print || a.search != ""
}

// overrides returns the settings the flags force.
func (a cliArgs) overrides() *config.Settings {
	return &config.Settings{
		Instance: a.instance,
		Timeline: a.timeline,
		Theme:    a.theme,
		LogFile:  a.logFile,
		Stream:   a.stream,
	}
}
