package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"geodraw/internal/component"
	"geodraw/internal/config"
	"geodraw/internal/logging"
	"geodraw/internal/tile"
	"geodraw/internal/tui"
)

func main() {
	configDir := pflag.StringP("config", "c", "", "directory holding "+config.FileName)
	pflag.String("log-level", "", "log level: trace, debug, info, warn or error")
	pflag.String("log-file", "", "log file, empty keeps the configured one")
	pflag.Parse()

	if err := config.Load(*configDir); err != nil {
		log.Fatal(err)
	}
	if err := config.BindFlags(pflag.CommandLine); err != nil {
		log.Fatal(err)
	}

	logger, closer, err := logging.Open(config.GetString("logFile"), config.GetString("logLevel"))
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()
	if used := config.Used(); used != "" {
		logger.Info().Str("path", used).Msg("loaded config")
	} else {
		logger.Info().Msg("no config file, using defaults")
	}

	tc := config.GetTileConfig()
	var fetcher tile.Fetcher
	if tc.Enabled {
		fetcher = tile.NewHTTPFetcher(tc.URL, tc.UserAgent, tc.Timeout)
	}
	dc := config.GetDrawConfig()
	comp := component.New(component.Options{
		View:      config.GetViewConfig(),
		Draw:      dc,
		Fetcher:   fetcher,
		CacheSize: tc.CacheSize,
		Logger:    logger,
	})
	opts := tui.Options{
		Title:        config.GetString("title"),
		HitTolerance: dc.HitTolerance,
		Logger:       logger,
	}

	var m tea.Model
	if pflag.NArg() > 0 {
		m = tui.NewWithPath(comp, opts, pflag.Arg(0))
	} else {
		m = tui.New(comp, opts)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.Error().Err(err).Msg("ui stopped")
		log.Fatal(err)
	}
	comp.Unmount()
}
