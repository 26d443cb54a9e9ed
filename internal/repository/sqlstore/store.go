package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/repository"
)

// Store implements repository.RecordStore on a single key/value table.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger
	now     func() time.Time
}

var _ repository.RecordStore = (*Store)(nil)

// Open connects with the given dialect, pings the server and creates the
// records table when it does not exist yet.
func Open(ctx context.Context, dialect Dialect, dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn, err := normalizeDSN(dialect, dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect.Name, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect.Name, err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := New(db, dialect, logger)
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sql store ready", zap.String("dialect", dialect.Name))
	return s, nil
}

// New wraps an already opened database handle.
func New(db *sql.DB, dialect Dialect, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, dialect: dialect, logger: logger, now: time.Now}
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.CreateTable); err != nil {
		return fmt.Errorf("failed to create records table: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := repository.ValidateKey(key); err != nil {
		return nil, false, err
	}

	var data string
	err := s.db.QueryRowContext(ctx, s.dialect.SelectValue, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load record %s: %w", key, err)
	}
	return []byte(data), true, nil
}

// Save upserts the row, which the engine applies atomically.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := repository.ValidateKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, string(data), s.now().UTC()); err != nil {
		return fmt.Errorf("failed to save record %s: %w", key, err)
	}
	s.logger.Debug("record saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := repository.ValidateKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.Delete, key); err != nil {
		return fmt.Errorf("failed to remove record %s: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
