package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flowwork/internal/glguess"
	"flowwork/internal/logger"
	"flowwork/internal/model"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "flowwork"

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
}

// AIMapCache is a read-through redis cache in front of an AIMapSource.
// Redis failures degrade to the underlying source.
type AIMapCache struct {
	store cmdable
	next  glguess.AIMapSource
	ttl   time.Duration
	log   *logger.Logger
}

var _ glguess.AIMapSource = (*AIMapCache)(nil)

// NewClient parses url, connects and pings redis.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewAIMapCache(client *redis.Client, next glguess.AIMapSource, ttl time.Duration, log *logger.Logger) *AIMapCache {
	return newAIMapCache(client, next, ttl, log)
}

func newAIMapCache(store cmdable, next glguess.AIMapSource, ttl time.Duration, log *logger.Logger) *AIMapCache {
	if log == nil {
		log = logger.Nop()
	}
	return &AIMapCache{store: store, next: next, ttl: ttl, log: log}
}

func aiMapKey(companyID int64) string {
	return fmt.Sprintf("%s:aimap:%d", keyNamespace, companyID)
}

func (c *AIMapCache) Load(ctx context.Context, companyID int64) (*model.AIMap, error) {
	key := aiMapKey(companyID)

	raw, err := c.store.Get(ctx, key).Result()
	switch {
	case err == nil:
		var m model.AIMap
		if jsonErr := json.Unmarshal([]byte(raw), &m); jsonErr == nil {
			if m.SupplierDefaultGL == nil {
				m.SupplierDefaultGL = map[int64]int64{}
			}
			if m.TokenMap == nil {
				m.TokenMap = map[string]int64{}
			}
			return &m, nil
		}
		c.log.Warn(ctx, "discarding undecodable cached ai map")
	case !errors.Is(err, redis.Nil):
		c.log.Error(ctx, "ai map cache read failed", err)
	}

	m, err := c.next.Load(ctx, companyID)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(m)
	if err != nil {
		return m, nil
	}
	if err := c.store.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.log.Error(ctx, "ai map cache write failed", err)
	}
	return m, nil
}
