package compare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/ngtax/internal/cache"
	"github.com/rgehrsitz/ngtax/internal/calculation"
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/rgehrsitz/ngtax/internal/store"
)

// ErrNoStore is returned by history operations when persistence is disabled
var ErrNoStore = errors.New("persistence is not configured")

// DefaultCacheTTL bounds how long a cached result is reused
const DefaultCacheTTL = 24 * time.Hour

// Recorder persists comparison results; *store.Store implements it
type Recorder interface {
	Save(ctx context.Context, label string, result domain.ComparisonResult) (*store.Record, error)
	Get(ctx context.Context, id string) (*store.Record, error)
	List(ctx context.Context, limit int) ([]store.Record, error)
}

// Options configures a Service. Nil Cache or Store disables that layer.
type Options struct {
	Cache    cache.Cache
	Store    Recorder
	CacheTTL time.Duration
	Logger   calculation.Logger
}

// Service orchestrates engine, cache and store
type Service struct {
	engine   *calculation.Engine
	cache    cache.Cache
	store    Recorder
	ttl      time.Duration
	rulesTag string
	logger   calculation.Logger
}

// NewService creates a comparison service around an engine
func NewService(engine *calculation.Engine, opts Options) *Service {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Service{
		engine:   engine,
		cache:    opts.Cache,
		store:    opts.Store,
		ttl:      ttl,
		rulesTag: cache.RulesTag(engine.Rules()),
		logger:   logger,
	}
}

// Engine returns the underlying calculation engine
func (s *Service) Engine() *calculation.Engine {
	return s.engine
}

// HasStore reports whether results can be persisted
func (s *Service) HasStore() bool {
	return s.store != nil
}

func (s *Service) cacheKey(inputs domain.TaxInputs) string {
	return cache.Key(inputs) + ":" + s.rulesTag
}

// Compare returns the comparison for inputs, reusing a cached result when
// one exists. Cache failures are logged and never fail the comparison.
func (s *Service) Compare(ctx context.Context, inputs domain.TaxInputs) (domain.ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ComparisonResult{}, err
	}

	var key string
	if s.cache != nil {
		key = s.cacheKey(inputs)
		if cached, ok := s.cache.Get(ctx, key); ok {
			var result domain.ComparisonResult
			err := json.Unmarshal([]byte(cached), &result)
			if err == nil {
				s.logger.Debugf("cache hit %s", key)
				return result, nil
			}
			s.logger.Warnf("discarding unreadable cache entry %s: %v", key, err)
		}
	}

	result := s.engine.Compare(inputs)

	if s.cache != nil {
		data, err := json.Marshal(result)
		if err != nil {
			s.logger.Warnf("failed to encode result for cache: %v", err)
		} else if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
			s.logger.Warnf("failed to cache result: %v", err)
		}
	}
	return result, nil
}

// CompareAndSave compares and persists the result. Without a store the
// result is returned in an unsaved record with no ID.
func (s *Service) CompareAndSave(ctx context.Context, label string, inputs domain.TaxInputs) (*store.Record, error) {
	result, err := s.Compare(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return &store.Record{Label: label, Result: &result}, nil
	}

	rec, err := s.store.Save(ctx, label, result)
	if err != nil {
		return nil, fmt.Errorf("failed to save comparison: %w", err)
	}
	s.logger.Infof("saved comparison %s", rec.ID)
	return rec, nil
}

// History lists saved comparisons, newest first
func (s *Service) History(ctx context.Context, limit int) ([]store.Record, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.List(ctx, limit)
}

// Record loads one saved comparison with its full result
func (s *Service) Record(ctx context.Context, id string) (*store.Record, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.Get(ctx, id)
}
