package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/account"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/analytics"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/category"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/viewer"
	"github.com/carson-networks/budget-tracker/internal/web"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Sessions *viewer.Sessions
	Storage  *storage.Storage
	Verifier *auth.Verifier
	LoginURL string
}

// Routes builds the mux serving the JSON API, the status probe and the transaction page.
func (r *Rest) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage, r.Sessions)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	config := huma.DefaultConfig("Budget Tracker", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humago.New(mux, config)
	api.UseMiddleware(logging.NewHumaMiddleware(r.Logger))
	api.UseMiddleware(auth.NewHumaMiddleware(api, r.Verifier))

	account.NewCreateAccountHandler(r.Service.Account).Register(api)
	account.NewListAccountsHandler(r.Service.Account).Register(api)
	category.NewHandler(r.Service.Category).Register(api)
	transaction.NewCreateTransactionHandler(r.Service.Transaction, r.Sessions).Register(api)
	transaction.NewViewHandler(r.Sessions).Register(api)
	analytics.NewHandler(r.Service.Analytics).Register(api)

	web.NewPage(r.Service.Account, r.Service.Category, r.Sessions, r.Verifier, r.LoginURL, r.Logger).Register(mux)

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
