package redis

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"epiportal-server/db"
	"epiportal-server/models"
)

// GEO_COVERAGE_KEY_FORMAT is used to cache resolved geography groups per
// indicator selection.
const GEO_COVERAGE_KEY_FORMAT = "geo_coverage_v1:%s"

// RedisCoverageDAO handles the geography-coverage cache using Redis.
type RedisCoverageDAO struct {
	client db.RedisClient
}

// NewRedisCoverageDAO initializes a RedisCoverageDAO with the Redis client.
func NewRedisCoverageDAO(client db.RedisClient) *RedisCoverageDAO {
	return &RedisCoverageDAO{client: client}
}

// SetGeoGroups caches the resolved geography groups for a selection key.
func (dao *RedisCoverageDAO) SetGeoGroups(cacheKey string, groups []models.GeographyGroup, ttl time.Duration) error {
	key := fmt.Sprintf(GEO_COVERAGE_KEY_FORMAT, cacheKey)
	data, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to marshal geography groups for %s: %w", cacheKey, err)
	}
	if err := dao.client.Set(key, string(data), ttl); err != nil {
		return fmt.Errorf("failed to set geography groups in redis: %w", err)
	}
	return nil
}

// GetGeoGroups retrieves cached geography groups for a selection key. The
// second return value reports whether the cache held an entry.
func (dao *RedisCoverageDAO) GetGeoGroups(cacheKey string) ([]models.GeographyGroup, bool, error) {
	key := fmt.Sprintf(GEO_COVERAGE_KEY_FORMAT, cacheKey)
	str, err := dao.client.Get(key)
	if err != nil {
		// A miss (or an unreachable cache) is not an error: the resolver
		// simply recomputes.
		return nil, false, nil
	}
	var groups []models.GeographyGroup
	if err := json.Unmarshal([]byte(str), &groups); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal geography groups JSON: %w", err)
	}
	return groups, true, nil
}

// InvalidateGeoGroups drops the cached entry for a selection key.
func (dao *RedisCoverageDAO) InvalidateGeoGroups(cacheKey string) error {
	key := fmt.Sprintf(GEO_COVERAGE_KEY_FORMAT, cacheKey)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete coverage cache key %s: %w", key, err)
	}
	log.Printf("[RedisCoverageDAO] Invalidated coverage cache for %s", cacheKey)
	return nil
}

// ListCachedCoverageKeys returns the selection keys for all cached coverage
// entries.
func (dao *RedisCoverageDAO) ListCachedCoverageKeys() ([]string, error) {
	pattern := fmt.Sprintf(GEO_COVERAGE_KEY_FORMAT, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list coverage cache keys: %w", err)
	}

	prefix := fmt.Sprintf(GEO_COVERAGE_KEY_FORMAT, "")
	cacheKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		cacheKeys = append(cacheKeys, strings.TrimPrefix(k, prefix))
	}
	return cacheKeys, nil
}
