// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"imageclass_backend/internal/feature/analysis/domain/entity"
	"imageclass_backend/internal/feature/analysis/usecase"
)

// CachingMetadataRepository decorates a MetadataRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Read queries (lookups, searches, stats)
// are cached; writes invalidate the affected entries.
type CachingMetadataRepository struct {
	inner     usecase.MetadataRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.MetadataRepository = (*CachingMetadataRepository)(nil)

// NewCachingMetadataRepository decorates a MetadataRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "images".
func NewCachingMetadataRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MetadataRepository, namespace string) *CachingMetadataRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "images"
	}
	return &CachingMetadataRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Upsert stores the analysis result and invalidates cache entries that may
// reference the affected filename (the record itself, searches, stats).
func (c *CachingMetadataRepository) Upsert(ctx context.Context, result *entity.AnalysisResult) error {
	if err := c.inner.Upsert(ctx, result); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}

	// Best effort: don't fail if cache invalidation fails
	_ = c.rdb.Del(ctx, c.filenameKey(result.Filename)).Err()
	_ = c.deleteByPattern(ctx, c.namespace+":search:*")
	_ = c.rdb.Del(ctx, c.statsKey()).Err()
	return nil
}

// FindByFilename retrieves a result, checking cache first then falling back to
// the underlying repository.
func (c *CachingMetadataRepository) FindByFilename(ctx context.Context, filename string) (*entity.AnalysisResult, error) {
	if c.rdb == nil {
		return c.inner.FindByFilename(ctx, filename)
	}

	key := c.filenameKey(filename)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.AnalysisResult
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByFilename(ctx, filename)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// ProcessedFilenames always hits the underlying repository. The batch driver
// calls it once per run, so caching would only add staleness risk.
func (c *CachingMetadataRepository) ProcessedFilenames(ctx context.Context) (map[string]bool, error) {
	return c.inner.ProcessedFilenames(ctx)
}

// Search retrieves matching results, checking cache first then falling back to
// the underlying repository.
func (c *CachingMetadataRepository) Search(ctx context.Context, term string) ([]entity.AnalysisResult, error) {
	if c.rdb == nil {
		return c.inner.Search(ctx, term)
	}

	key := c.searchKey(term)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.AnalysisResult
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// CountryStats retrieves per-country counts, checking cache first then falling
// back to the underlying repository.
func (c *CachingMetadataRepository) CountryStats(ctx context.Context) ([]entity.CountryCount, error) {
	if c.rdb == nil {
		return c.inner.CountryStats(ctx)
	}

	key := c.statsKey()
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.CountryCount
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.CountryStats(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingMetadataRepository) filenameKey(filename string) string {
	return fmt.Sprintf("%s:file:%s", c.namespace, safe(filename))
}

func (c *CachingMetadataRepository) searchKey(term string) string {
	return fmt.Sprintf("%s:search:%s", c.namespace, safe(strings.ToLower(term)))
}

func (c *CachingMetadataRepository) statsKey() string {
	return c.namespace + ":stats:countries"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingMetadataRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
