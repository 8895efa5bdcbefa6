package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/carson-networks/budget-tracker/api"
	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/config"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/viewer"
)

func main() {
	logger := logging.SetupLogging()
	logger.Info("budget-tracker starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := envConfig.Validate(); err != nil {
		logger.WithError(err).Fatal("config.Validate")
		return
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Fatal("logging.SetLevel")
		return
	}

	if envConfig.RunMigrations {
		if err := storage.RunMigrations(envConfig.PostgresDSN(), logger); err != nil {
			logger.WithError(err).Fatal("storage.RunMigrations")
			return
		}
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers, logger)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator)
	sessions := viewer.NewSessions(viewer.NewEngineFactory(svc.Transaction, logger, envConfig.PageSize), envConfig.SessionTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:   logger,
		Port:     envConfig.HTTPPort,
		Service:  svc,
		Sessions: sessions,
		Storage:  dbStorage,
		Verifier: auth.NewVerifier(envConfig.JWTSecret, envConfig.JWTAudience),
		LoginURL: envConfig.LoginURL,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("HttpServer.Serve")
	}
	logger.Info("budget-tracker stopped")
}
