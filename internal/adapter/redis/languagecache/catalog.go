package languagecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/pacerode/evaluator/internal/core/ports/primary"
	"github.com/pacerode/evaluator/internal/core/ports/secondary"
	"github.com/pacerode/evaluator/internal/domain"
)

const catalogKey = "engine:languages"

var _ secondary.LanguageCache = (*CatalogCache)(nil)

// CatalogCache implements the LanguageCache interface with Redis. The engine
// language catalog changes rarely, so it is cached with a TTL to avoid one
// catalog round trip per evaluation.
type CatalogCache struct {
	redisClient *redis.Client
	logger      primary.Logger
	ttl         time.Duration
}

func NewCatalogCache(redisClient *redis.Client, logger primary.Logger, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		redisClient: redisClient,
		logger:      logger,
		ttl:         ttl,
	}
}

// GetCatalog returns the cached catalog, or (nil, nil) on a miss.
func (c *CatalogCache) GetCatalog(ctx context.Context) ([]domain.EngineLanguage, error) {
	data, err := c.redisClient.Get(ctx, catalogKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read language catalog: %w", err)
	}

	var catalog []domain.EngineLanguage
	if err := json.Unmarshal([]byte(data), &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal language catalog: %w", err)
	}

	return catalog, nil
}

// PutCatalog stores the catalog with the configured TTL.
func (c *CatalogCache) PutCatalog(ctx context.Context, catalog []domain.EngineLanguage) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to marshal language catalog: %w", err)
	}

	if err := c.redisClient.Set(ctx, catalogKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store language catalog: %w", err)
	}

	c.logger.Debug("Language catalog cached", "entries", len(catalog), "ttl", c.ttl)
	return nil
}
