package config

import (
    "time"
)

// CacheConfig defines settings for the entry-list response cache.  Caching is
// only applied to GET /api/entries, keyed by the query string, so the knobs
// are deliberately few: a TTL, a key prefix and a body size cap.  When
// Enabled is false or no Redis client is configured, caching is disabled.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        Prefix:       envStr("CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}
