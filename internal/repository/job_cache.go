package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"contech_bot/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	jobsNamespace = "jobs"
	openJobsKey   = "open"
)

// KeyValueCache is implemented by *cache.Cache
type KeyValueCache interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, namespace, key string) error
}

type cachedJobRepository struct {
	JobRepository
	cache  KeyValueCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedJobRepository caches the open postings list of next. Cache
// failures are logged and fall through to next.
func NewCachedJobRepository(next JobRepository, cache KeyValueCache, ttl time.Duration, logger *zap.Logger) JobRepository {
	return &cachedJobRepository{JobRepository: next, cache: cache, ttl: ttl, logger: logger}
}

func (r *cachedJobRepository) ListOpen(ctx context.Context) ([]model.JobPosting, error) {
	raw, err := r.cache.Get(ctx, jobsNamespace, openJobsKey)
	switch {
	case err == nil:
		var jobs []model.JobPosting
		jsonErr := json.Unmarshal(raw, &jobs)
		if jsonErr == nil {
			return jobs, nil
		}
		r.logger.Warn("discarding undecodable open jobs cache entry", zap.Error(jsonErr))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("open jobs cache read failed", zap.Error(err))
	}

	jobs, err := r.JobRepository.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(jobs); err == nil {
		if err := r.cache.Set(ctx, jobsNamespace, openJobsKey, raw, r.ttl); err != nil {
			r.logger.Warn("open jobs cache write failed", zap.Error(err))
		}
	}
	return jobs, nil
}

func (r *cachedJobRepository) Create(ctx context.Context, job *model.JobPosting) error {
	if err := r.JobRepository.Create(ctx, job); err != nil {
		return err
	}
	r.InvalidateOpen(ctx)
	return nil
}

func (r *cachedJobRepository) UpdateStatus(ctx context.Context, id int64, status model.JobStatus) error {
	if err := r.JobRepository.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	r.InvalidateOpen(ctx)
	return nil
}

func (r *cachedJobRepository) InvalidateOpen(ctx context.Context) {
	if err := r.cache.Delete(ctx, jobsNamespace, openJobsKey); err != nil {
		r.logger.Warn("open jobs cache invalidation failed", zap.Error(err))
	}
}
