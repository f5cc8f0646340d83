package booking

import (
    "strconv"
    "strings"
    "sync"
    "time"

    gocache "github.com/patrickmn/go-cache"
)

// DefaultCacheTTL is the shared freshness window of the availability cache.
const DefaultCacheTTL = 30 * time.Second

// rangeKeyDelim marks composite (date-range) cache keys.  Invalidation is
// conservative: a changed schedule may affect any range listing, so every
// key containing the delimiter is dropped alongside the schedule's own key.
const rangeKeyDelim = "|"

// ScheduleKey derives the cache key for a single schedule payload.
func ScheduleKey(scheduleID uint64) string {
    return "schedule:" + strconv.FormatUint(scheduleID, 10)
}

// RangeKey derives the cache key for a date-range listing.  classID 0
// stands for "all classes".
func RangeKey(from, to time.Time, classID uint64) string {
    return "range:" + from.UTC().Format(time.RFC3339) + rangeKeyDelim +
        to.UTC().Format(time.RFC3339) + rangeKeyDelim +
        strconv.FormatUint(classID, 10)
}

// AvailabilityCache memoizes schedule availability payloads for read-mostly
// listings.  It must never back admission or cancellation decisions; those
// always read the source of truth.
//
// Unlike an ordinary per-entry TTL cache, the whole cache shares one
// freshness window: the first Put after construction, after Clear or
// after an elapsed window records a populated-at timestamp, and every
// lookup is a MISS once TTL has elapsed since that moment, regardless of
// when the individual key was written.  A Put into a lapsed cache flushes
// the stale entries and starts a new window, so repopulation also bounds
// the entry count.  Entries are therefore stored without per-entry
// expiration and the window is enforced here.
type AvailabilityCache struct {
    mu          sync.Mutex
    entries     *gocache.Cache
    populatedAt time.Time
    ttl         time.Duration
    now         func() time.Time
}

// NewAvailabilityCache returns an empty cache with the given shared TTL.
// A non-positive ttl falls back to DefaultCacheTTL.
func NewAvailabilityCache(ttl time.Duration) *AvailabilityCache {
    if ttl <= 0 {
        ttl = DefaultCacheTTL
    }
    return &AvailabilityCache{
        entries: gocache.New(gocache.NoExpiration, 0),
        ttl:     ttl,
        now:     time.Now,
    }
}

// Get returns the cached payload for key.  A lookup is a HIT only when the
// cache has been populated, the shared window has not elapsed and the key
// is present.
func (c *AvailabilityCache) Get(key string) (interface{}, bool) {
    c.mu.Lock()
    defer c.mu.Unlock()
    if c.populatedAt.IsZero() || c.now().Sub(c.populatedAt) >= c.ttl {
        return nil, false
    }
    return c.entries.Get(key)
}

// Put stores a payload.  The first write after construction, Clear or an
// elapsed window establishes the shared freshness window for all
// subsequent keys; entries from a lapsed window are dropped before the
// new window starts, since nothing will ever serve them again.
func (c *AvailabilityCache) Put(key string, payload interface{}) {
    c.mu.Lock()
    defer c.mu.Unlock()
    if c.populatedAt.IsZero() || c.now().Sub(c.populatedAt) >= c.ttl {
        c.entries.Flush()
        c.populatedAt = c.now()
    }
    c.entries.Set(key, payload, gocache.NoExpiration)
}

// Invalidate drops the schedule's own key and, conservatively, every
// composite range key.
func (c *AvailabilityCache) Invalidate(scheduleID uint64) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.entries.Delete(ScheduleKey(scheduleID))
    for key := range c.entries.Items() {
        if strings.Contains(key, rangeKeyDelim) {
            c.entries.Delete(key)
        }
    }
}

// Clear empties the cache and resets the shared window.
func (c *AvailabilityCache) Clear() {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.entries.Flush()
    c.populatedAt = time.Time{}
}

// Len reports the number of stored entries, ignoring the freshness window.
func (c *AvailabilityCache) Len() int {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.entries.ItemCount()
}
