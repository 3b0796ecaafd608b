package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kossler/Actual-Analytics/pkg/models"
	"github.com/redis/go-redis/v9"
)

// DefaultSeasonsTTL bounds staleness between ETL runs; the nightly
// loader rewrites GameStat rows at most once a day, so 15 minutes is
// already conservative.
const DefaultSeasonsTTL = 15 * time.Minute

// SeasonCache stores computed season aggregates in Redis so repeated
// dashboard loads skip the GameStat scan. Aggregates are re-derivable
// from source records at any time; this cache is purely an accelerator
// and every failure path degrades to an uncached read.
type SeasonCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeasonCache creates a season aggregate cache
func NewSeasonCache(client *redis.Client, ttl time.Duration) *SeasonCache {
	if ttl <= 0 {
		ttl = DefaultSeasonsTTL
	}
	return &SeasonCache{
		client: client,
		ttl:    ttl,
	}
}

// ReadSeasons retrieves cached aggregates for a player. A cache miss
// returns (nil, nil).
func (c *SeasonCache) ReadSeasons(ctx context.Context, playerID string) ([]models.SeasonAggregate, error) {
	key := seasonsKey(playerID)

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seasons cache: %w", err)
	}

	var seasons []models.SeasonAggregate
	if err := json.Unmarshal([]byte(data), &seasons); err != nil {
		return nil, fmt.Errorf("unmarshaling cached seasons: %w", err)
	}

	return seasons, nil
}

// WriteSeasons stores computed aggregates for a player
func (c *SeasonCache) WriteSeasons(ctx context.Context, playerID string, seasons []models.SeasonAggregate) error {
	key := seasonsKey(playerID)

	data, err := json.Marshal(seasons)
	if err != nil {
		return fmt.Errorf("marshaling seasons: %w", err)
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate drops a player's cached aggregates
func (c *SeasonCache) Invalidate(ctx context.Context, playerID string) error {
	return c.client.Del(ctx, seasonsKey(playerID)).Err()
}

func seasonsKey(playerID string) string {
	return fmt.Sprintf("player:%s:seasons", playerID)
}
