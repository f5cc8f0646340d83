package config

// Redis backs two transport-level concerns: the distributed rate
// limiter and the response cache.  Both are optional, so connection
// failure at startup is not fatal; the caller logs it and the
// middleware degrades to pass-through.

import (
    "context"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from REDIS_ADDR (host:port, default
// localhost:6379) with optional REDIS_PASSWORD and REDIS_DB, then
// verifies the connection with a short ping.  Returns nil when the
// server cannot be reached.
func NewRedisClient() *redis.Client {
    client := redis.NewClient(&redis.Options{
        Addr:     envStr("REDIS_ADDR", "localhost:6379"),
        Password: envStr("REDIS_PASSWORD", ""),
        DB:       envInt("REDIS_DB", 0),
    })
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}
