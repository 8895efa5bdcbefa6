package main

import (
	"github.com/carson-networks/budget-tracker/internal/config"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

func main() {
	logger := logging.SetupLogging()

	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	if err := storage.RunMigrations(env.PostgresDSN(), logger); err != nil {
		logger.WithError(err).Fatal("storage.RunMigrations")
	}
}
