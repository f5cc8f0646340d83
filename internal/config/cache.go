package config

import (
    "strings"
    "time"
)

// CacheConfig tunes the Redis response cache that fronts the public
// availability listings.  It is distinct from the in-process cache
// inside the booking engine: this layer stores whole rendered HTTP
// responses, keyed by route and query string.  When Enabled is false or
// no Redis client could be built the middleware degrades to
// pass-through.
type CacheConfig struct {
    Enabled      bool            // RESPONSE_CACHE_ENABLED
    Methods      map[string]bool // HTTP methods eligible for caching
    TTL          time.Duration   // lifetime of one cached response
    KeyStrategy  string          // which request parts form the key
    Prefix       string          // Redis key namespace
    MaxBodyBytes int             // cap on the cached body size
}

// LoadCacheConfig reads the response cache settings.  The defaults
// cache GET responses for 30 seconds, the same staleness the
// availability endpoints already tolerate from the engine's own cache.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("RESPONSE_CACHE_ENABLED", true),
        Methods:      parseMethods(envStr("RESPONSE_CACHE_METHODS", "GET")),
        TTL:          envDur("RESPONSE_CACHE_TTL", 30*time.Second),
        KeyStrategy:  envStr("RESPONSE_CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       envStr("RESPONSE_CACHE_PREFIX", "respcache"),
        MaxBodyBytes: envInt("RESPONSE_CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

// parseMethods turns a comma-separated method list into a lookup set.
func parseMethods(s string) map[string]bool {
    m := make(map[string]bool)
    for _, p := range strings.Split(s, ",") {
        if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
            m[p] = true
        }
    }
    return m
}
