package main

import (
	"embed"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/fenying/minesweeper-go/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

var cli struct {
	Config string `short:"c" help:"Path to a YAML config file. Environment variables override it." type:"path"`

	Serve   serveCmd   `cmd:"" default:"1" help:"Run the game server."`
	Play    playCmd    `cmd:"" help:"Play a round in the terminal."`
	Migrate migrateCmd `cmd:"" help:"Bring the database schema up to date and exit."`
}

func setupLogging(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("unable to parse log level: %w", err)
	}
	if cfg.Development {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if cfg.LogFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to set up log rotation: %w", err)
		}
		log.AddHook(hook)
	}

	return log, nil
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("minesweeper"),
		kong.Description("A minesweeper rules engine with an HTTP and websocket face."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	kctx.FatalIfErrorf(err)

	log, err := setupLogging(cfg)
	kctx.FatalIfErrorf(err)

	kctx.FatalIfErrorf(kctx.Run(log, cfg))
}
