package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Naval-Skirmish/internal/config"
	"github.com/Garsondee/Naval-Skirmish/internal/game"
	"github.com/Garsondee/Naval-Skirmish/internal/logging"
	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot := logging.New(logging.Options{Pretty: true})
		boot.Fatal().Err(err).Msg("loading config")
	}
	log := logging.New(logging.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	opts, err := cfg.EngineOptions(log)
	if err != nil {
		log.Fatal().Err(err).Msg("configuring engine")
	}
	e, err := sim.New(cfg.Setup, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("starting battle")
	}

	g := game.New(e, cfg.Viewer, log)
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Naval Skirmish")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Error().Err(err).Msg("viewer stopped")
		os.Exit(1)
	}
	logSummary(log, e)
}

func logSummary(log zerolog.Logger, e *sim.Engine) {
	f := e.Frame()
	log.Info().
		Str("run", f.RunID).
		Str("outcome", e.Outcome().String()).
		Int("tick", f.Tick).
		Int("afloat_a", f.Stats[sim.TeamA].Alive).
		Int("afloat_b", f.Stats[sim.TeamB].Alive).
		Msg("viewer closed")
}
