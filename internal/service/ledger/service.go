package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
	"github.com/mamadbah2/resaletracker/internal/repository"
)

// DefaultKey is the record store key the article collection lives under.
const DefaultKey = "sales_tracker_articles"

// Service owns every mutation and derivation over the article collection.
// Each operation loads the full collection from the store and, for
// mutations, writes the full updated collection back.
type Service struct {
	store  repository.RecordStore
	key    string
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
	loc    *time.Location

	// mu serialises read-modify-write cycles issued through this Service.
	mu sync.Mutex
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the ULID generator used for new ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithKey stores the collection under a different record key.
func WithKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLocation sets the time zone used for calendar windows.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewService wires a ledger over the given record store.
func NewService(store repository.RecordStore, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:  store,
		key:    DefaultKey,
		logger: logger,
		now:    time.Now,
		newID:  newULID,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the time zone analytics windows are computed in.
func (s *Service) Location() *time.Location {
	return s.loc
}

func newULID() string {
	return ulid.Make().String()
}

func (s *Service) load(ctx context.Context) ([]models.Article, error) {
	data, found, err := s.store.Load(ctx, s.key)
	if err != nil {
		s.logger.Error("failed to load articles", zap.String("key", s.key), zap.Error(err))
		return nil, fmt.Errorf("%w: load articles: %w", models.ErrStoreIO, err)
	}
	if !found {
		return nil, nil
	}
	articles, err := Decode(data)
	if err != nil {
		s.logger.Error("failed to decode articles", zap.String("key", s.key), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", models.ErrStoreIO, err)
	}
	return articles, nil
}

func (s *Service) save(ctx context.Context, articles []models.Article) error {
	data, err := Encode(articles)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrStoreIO, err)
	}
	if err := s.store.Save(ctx, s.key, data); err != nil {
		s.logger.Error("failed to save articles", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: save articles: %w", models.ErrStoreIO, err)
	}
	return nil
}

// mutate runs fn inside one read-modify-write cycle. The collection is
// written back only when fn reports a change and returns no error.
func (s *Service) mutate(ctx context.Context, fn func([]models.Article) ([]models.Article, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	articles, err := s.load(ctx)
	if err != nil {
		return err
	}
	updated, changed, err := fn(articles)
	if err != nil || !changed {
		return err
	}
	return s.save(ctx, updated)
}

func indexOf(articles []models.Article, id string) int {
	for i := range articles {
		if articles[i].ID == id {
			return i
		}
	}
	return -1
}
