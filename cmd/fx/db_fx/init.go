package db_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"reout/internal/infra"
	"reout/internal/repositories"
	"reout/pkg/config"
	"reout/pkg/logger"
)

// Module provides the feedback ledger store picked by LEDGER_BACKEND.
var Module = fx.Provide(provideLedgerStore)

func provideLedgerStore(lc fx.Lifecycle, cfg config.Config, log *logger.Logger) (repositories.FeedbackRepositoryInterface, error) {
	switch cfg.LedgerBackend {
	case config.LedgerSheets:
		repo, err := repositories.NewSheetsFeedbackRepository(context.Background(), cfg.SheetsSpreadsheetID, cfg.SheetsTab, infra.GoogleClientOptions(cfg)...)
		if err != nil {
			return nil, fmt.Errorf("init sheets ledger: %w", err)
		}
		log.Info("Using Google Sheets ledger", "tab", cfg.SheetsTab)
		return repo, nil
	case config.LedgerPostgres, config.LedgerSQLite:
		db, err := infra.OpenDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		repo := repositories.NewFeedbackRepository(db)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return repo.Migrate(ctx)
			},
			OnStop: func(ctx context.Context) error {
				infra.CloseDatabase(db, log)
				return nil
			},
		})
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s", cfg.LedgerBackend)
	}
}
