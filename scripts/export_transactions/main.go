package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/budget-tracker/internal/config"
	"github.com/carson-networks/budget-tracker/internal/export"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/viewer"
)

func main() {
	logger := logging.SetupLogging()

	app := &cli.App{
		Name:  "export_transactions",
		Usage: "write an owner's filtered transactions as CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Usage: "owner id", Required: true},
			&cli.StringFlag{Name: "from", Usage: "first date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "to", Usage: "last date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "account", Usage: "account id"},
			&cli.StringFlag{Name: "category", Usage: "category id"},
			&cli.StringFlag{Name: "type", Usage: "income or expense"},
			&cli.StringFlag{Name: "out", Usage: "output file, \"-\" for stdout (default transactions_<date>.csv)"},
		},
		Action: func(c *cli.Context) error {
			owner, err := uuid.FromString(c.String("owner"))
			if err != nil {
				return fmt.Errorf("invalid owner: %w", err)
			}

			env, err := config.ProcessEnvironmentVariables()
			if err != nil {
				return fmt.Errorf("config.ProcessEnvironmentVariables: %w", err)
			}
			store, err := storage.NewStorage(env)
			if err != nil {
				return err
			}
			defer store.Close()

			delegator := operator.NewOperatorDelegator(store, 1, logger)
			delegator.Start()
			defer delegator.Stop()
			svc := service.NewService(store, delegator)

			scope := viewer.OwnerScope{Owner: owner, Transactions: svc.Transaction}
			view := viewer.NewView()
			engine := viewer.NewEngine(viewer.Config{
				Fetcher:  scope,
				Mutator:  scope,
				Renderer: view,
				Notifier: view,
				Logger:   logger,
			})

			err = engine.ApplyFilters(c.Context, viewer.FilterInput{
				AccountID:  c.String("account"),
				CategoryID: c.String("category"),
				Type:       c.String("type"),
				DateFrom:   c.String("from"),
				DateTo:     c.String("to"),
			})
			if err != nil {
				return err
			}
			rows, err := engine.Export()
			if err != nil {
				return err
			}

			var out io.Writer = os.Stdout
			name := c.String("out")
			if name == "" {
				name = export.Filename(time.Now())
			}
			if name != "-" {
				f, err := os.Create(name)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			if err := export.WriteCSV(out, rows); err != nil {
				return err
			}
			logger.WithField("rows", len(rows)).WithField("out", name).Info("export_transactions.Complete")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Fatal("export_transactions")
	}
}
