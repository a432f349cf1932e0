// ABOUTME: CLI entry point for pleroterm with terminal crash recovery
// ABOUTME: Loads config and theme, then runs the interactive client or print mode

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mauromedda/pleroterm/internal/app"
	"github.com/mauromedda/pleroterm/internal/config"
	"github.com/mauromedda/pleroterm/internal/log"
	"github.com/mauromedda/pleroterm/internal/mode/print"
	"github.com/mauromedda/pleroterm/internal/pleroma"
	"github.com/mauromedda/pleroterm/pkg/tui/terminal"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// reloadInterval is how often config and theme files are polled.
const reloadInterval = time.Second

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("pleroterm %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run performs the full initialization sequence and dispatches to the selected mode.
func run(args cliArgs) error {
	settings, err := loadSettings(args)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if args.verbose {
		log.SetLevel(log.LevelDebug)
	} else if settings.LogLevel != "" {
		lvl, err := log.ParseLevel(settings.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(lvl)
	}

	th, themePath, err := loadTheme(settings.Theme)
	if err != nil {
		return err
	}
	theme.Set(th)

	client := pleroma.New(settings.Instance, settings.Token)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if args.printMode() {
		tl, err := pleroma.ParseTimeline(settings.Timeline)
		if err != nil {
			return err
		}
		return print.Run(ctx, client, print.Config{
			OutputFormat: args.format,
			Timeline:     tl,
			Limit:        settings.PageSize,
			Query:        args.search,
			Palette:      th.Palette,
		})
	}

	return runInteractive(ctx, args, settings, client, themePath)
}

// runInteractive owns the terminal until the user quits. Logs go to a
// file for the whole run so they never draw over the screen.
func runInteractive(ctx context.Context, args cliArgs, settings *config.Settings, client *pleroma.Client, themePath string) error {
	logPath := settings.LogFile
	if logPath == "" {
		logPath = config.DefaultLogFile()
	}
	if err := config.EnsureDir(filepath.Dir(logPath)); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	closeLog, err := log.OpenFile(logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info("pleroterm %s: %s, %s timeline", version, client.Instance(), settings.Timeline)

	watched := append(config.GlobalConfigFiles(), args.config, themePath)
	reload := func() (*config.Settings, *theme.Theme, error) {
		s, err := loadSettings(args)
		if err != nil {
			return nil, nil, err
		}
		th, _, err := loadTheme(s.Theme)
		if err != nil {
			return nil, nil, err
		}
		return s, th, nil
	}

	term := terminal.NewProcessTerminal()
	a, err := app.New(term, client, settings,
		app.WithInput(term.Input()),
		app.WithToken(client.HasToken()),
		app.WithReload(watched, reloadInterval, reload),
	)
	if err != nil {
		return err
	}
	defer terminal.RestoreOnPanic(a)

	return a.Run(ctx)
}

func loadSettings(args cliArgs) (*config.Settings, error) {
	settings, err := config.Load(args.config)
	if err != nil {
		return nil, err
	}
	return settings.Override(args.overrides()), nil
}

// loadTheme resolves name as a file in the themes directory first, then
// as a built-in name or a path. The returned path is "" for built-ins.
func loadTheme(name string) (*theme.Theme, string, error) {
	if path := config.ThemeFile(name); name != "" && path != "" {
		th, err := theme.LoadFile(path)
		return th, path, err
	}
	th, err := theme.Resolve(name)
	if err != nil {
		return nil, "", fmt.Errorf("loading theme: %w", err)
	}
	if theme.Builtin(name) != nil || name == "" {
		return th, "", nil
	}
	return th, name, nil
}
