//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"conway/internal/app"
	"conway/internal/controller"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := app.NewLogger(os.Stderr, flags.LogLevel, "gol")
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := flags.SimConfig()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	ctrl := controller.New(controller.WithLogger(logger))
	defer ctrl.Close()

	game := app.New(ctrl, cfg, logger)
	if err := game.Start(); err != nil {
		logger.Fatal("start failed", "err", err)
	}

	ebiten.SetWindowTitle("gol - " + cfg.Mode.String())
	ebiten.SetTPS(flags.TPS)
	ebiten.SetWindowSize(app.ViewSize+app.PanelWidth, app.ViewSize)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game loop", "err", err)
	}
}
