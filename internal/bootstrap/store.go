package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/config"
	"github.com/mamadbah2/resaletracker/internal/repository"
	"github.com/mamadbah2/resaletracker/internal/repository/file"
	"github.com/mamadbah2/resaletracker/internal/repository/memory"
	"github.com/mamadbah2/resaletracker/internal/repository/mongodb"
	"github.com/mamadbah2/resaletracker/internal/repository/sqlstore"
	"github.com/mamadbah2/resaletracker/internal/service/ledger"
)

// CloseFunc releases the resources held by a store.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// OpenStore builds the record store selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (repository.RecordStore, CloseFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		return memory.NewStore(), noopClose, nil

	case config.DriverFile:
		s, err := file.NewStore(cfg.FileDir, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, noopClose, nil

	case config.DriverMongoDB:
		s, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoURI, cfg.MongoDBName, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.DriverMySQL, config.DriverPostgres:
		dialect, err := sqlstore.DialectFor(cfg.Driver)
		if err != nil {
			return nil, nil, err
		}
		dsn := cfg.MySQLDSN
		if cfg.Driver == config.DriverPostgres {
			dsn = cfg.PostgresDSN
		}
		s, err := sqlstore.Open(ctx, dialect, dsn, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error { return s.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
}

// NewLedger builds the ledger service over store using the configured key
// and reporting time zone.
func NewLedger(store repository.RecordStore, cfg *config.Config, logger *zap.Logger) (*ledger.Service, error) {
	loc, err := cfg.Reporting.Location()
	if err != nil {
		return nil, err
	}
	return ledger.NewService(store, logger,
		ledger.WithKey(cfg.Store.Key),
		ledger.WithLocation(loc)), nil
}
