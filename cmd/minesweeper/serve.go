package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/fenying/minesweeper-go/internal/app"
	"github.com/fenying/minesweeper-go/internal/config"
)

type serveCmd struct {
	Addr string `short:"a" help:"Listen address (overrides config)."`
}

func (c serveCmd) Run(log *logrus.Logger, cfg *config.Config) error {
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	log.WithFields(cfg.Fields()).Debug("configuration")

	return app.New(log, cfg, migrations).Start(ctx)
}
