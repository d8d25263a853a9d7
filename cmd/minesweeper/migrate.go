package main

import (
	"github.com/sirupsen/logrus"

	"github.com/fenying/minesweeper-go/internal/config"
	"github.com/fenying/minesweeper-go/internal/database"
)

type migrateCmd struct{}

func (migrateCmd) Run(log *logrus.Logger, cfg *config.Config) error {
	connString, err := cfg.Database.ConnString()
	if err != nil {
		return err
	}

	migrator, err := database.Migrate(connString, migrations)
	if err != nil {
		return err
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("database schema is up to date")
	return nil
}
