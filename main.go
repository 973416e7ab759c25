// Package main provides the entry point for the Terranova dashboard.
package main

import (
	"context"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"terranova/internal/ai"
	"terranova/internal/app"
	"terranova/internal/config"
	"terranova/internal/lot"
	"terranova/internal/store"
	"terranova/internal/version"
	"terranova/ui/mainwindow"
	"terranova/ui/prefs"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration load failed")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().Str("version", version.Version).Msg("starting terranova")

	if cfg.DefaultLotPrice > 0 {
		lot.DefaultPrice = decimal.NewFromInt(cfg.DefaultLotPrice)
	}

	state := app.NewState(store.NewFileStore(cfg.DataDir))
	if err := state.Load(); err != nil {
		log.Warn().Err(err).Msg("continuing with default data")
	}

	var consultant *ai.Consultant
	if cfg.GeminiAPIKey != "" {
		consultant, err = ai.NewConsultant(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn().Err(err).Msg("AI consultant unavailable")
			consultant = nil
		} else {
			defer consultant.Close()
		}
	} else {
		log.Info().Msg("GEMINI_API_KEY not set, AI consultant disabled")
	}

	fa := fyneapp.New()
	fa.Settings().SetTheme(&app.TerranovaTheme{})

	appPrefs := prefs.Load()
	win := mainwindow.New(fa, state, consultant, appPrefs)

	win.SetCloseIntercept(func() {
		win.Persist()
		state.Save()
		win.Close()
	})

	win.ShowAndRun()
}
