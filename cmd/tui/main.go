package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Naval-Skirmish/internal/config"
	"github.com/Garsondee/Naval-Skirmish/internal/logging"
	"github.com/Garsondee/Naval-Skirmish/internal/sim"
	"github.com/Garsondee/Naval-Skirmish/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "naval-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The terminal belongs to tcell, so logs only go to a file when a log
	// directory is configured.
	opts := logging.Options{Level: cfg.LogLevel, Out: io.Discard}
	if cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0o755); err != nil {
			return fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.Create(logging.FilePath(cfg.LogsDir, "naval-tui", time.Now()))
		if err != nil {
			return fmt.Errorf("creating log file: %w", err)
		}
		defer f.Close()
		opts.File = f
	}
	log := logging.New(opts)

	engineOpts, err := cfg.EngineOptions(log)
	if err != nil {
		return err
	}
	e, err := sim.New(cfg.Setup, engineOpts...)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = tui.NewRunner(e, screen, cfg.Viewer, log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info().Str("run", e.RunID()).Str("outcome", e.Outcome().String()).Int("tick", e.Tick()).Msg("terminal viewer closed")
	return err
}
