package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/mamadbah2/resaletracker/internal/bootstrap"
	"github.com/mamadbah2/resaletracker/internal/cli"
	"github.com/mamadbah2/resaletracker/internal/config"
	"github.com/mamadbah2/resaletracker/internal/repository/sheets"
	"github.com/mamadbah2/resaletracker/internal/service/ledger"
	"github.com/mamadbah2/resaletracker/internal/service/reporting"
	"github.com/mamadbah2/resaletracker/pkg/logger"
)

var envFile = flag.String("env", "", "Path to a .env file (defaults to ./.env when present)")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	closeStore := bootstrap.CloseFunc(func(context.Context) error { return nil })
	app := cli.NewApp(func(ctx context.Context) (*ledger.Service, *reporting.Service, error) {
		cfg, err := config.Load(*envFile)
		if err != nil {
			return nil, nil, err
		}
		// Commands print their own results; only warnings reach stderr.
		log, err := logger.New("warn", "console")
		if err != nil {
			return nil, nil, err
		}

		store, closeFn, err := bootstrap.OpenStore(ctx, cfg.Store, logger.Named(log, "repo.store"))
		if err != nil {
			return nil, nil, err
		}
		closeStore = closeFn

		svc, err := bootstrap.NewLedger(store, cfg, logger.Named(log, "svc.ledger"))
		if err != nil {
			return nil, nil, err
		}

		var sheetsRepo sheets.Repository
		if cfg.Sheets.Enabled() {
			sheetsRepo, err = sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named(log, "repo.sheets"))
			if err != nil {
				return nil, nil, err
			}
		}
		return svc, reporting.NewService(svc, sheetsRepo, cfg.Reporting.Currency, cfg.Sheets.ExportRange, logger.Named(log, "svc.reporting")), nil
	})
	cli.Register(commander, app)

	flag.Parse()
	ctx := context.Background()
	status := commander.Execute(ctx)

	if err := closeStore(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: closing store: %v\n", err)
		if status == subcommands.ExitSuccess {
			status = subcommands.ExitFailure
		}
	}
	os.Exit(int(status))
}
