package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"conway/internal/app"
	"conway/internal/controller"
	"conway/internal/term"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	logFile := flag.String("log-file", "", "write logs to this file (the terminal is owned by the UI)")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal("open log file", "err", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := app.NewLogger(out, flags.LogLevel, "gol-term")
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := flags.SimConfig()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("terminal", "err", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal("terminal", "err", err)
	}

	ctrl := controller.New(controller.WithLogger(logger))
	defer ctrl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := term.New(screen, ctrl, cfg, flags.TPS, logger).Run(ctx)
	screen.Fini()
	if runErr != nil {
		log.Fatal("run", "err", runErr)
	}
}
