// Package cache provides a two-tier cache for generated content:
// L1 in process memory, L2 in Redis when a URL is configured.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL controls how long entries stay cached
	DefaultTTL = 15 * time.Minute
	// DefaultMaxEntries bounds the L1 tier
	DefaultMaxEntries = 500

	defaultCleanupInterval = 5 * time.Minute
	keyPrefix              = "tc:"
)

// Options configures a Cache
type Options struct {
	RedisURL        string // empty disables L2
	TTL             time.Duration
	MaxEntries      int
	CleanupInterval time.Duration
	Logger          *logrus.Logger
}

// Stats reports cache counters
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
	Redis   bool  `json:"redis"`
}

// Cache implements L1 (memory) + L2 (Redis) caching of JSON values
type Cache struct {
	l1         sync.Map // key → *entry
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	logger     *logrus.Logger

	hits   atomic.Int64
	misses atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// New creates a cache and starts its L1 cleanup loop.
// An unreachable or invalid Redis URL disables L2 with a warning.
func New(ctx context.Context, opts Options) *Cache {
	c := &Cache{
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		logger:     opts.Logger,
		stop:       make(chan struct{}),
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.maxEntries == 0 {
		c.maxEntries = DefaultMaxEntries
	}
	if c.logger == nil {
		c.logger = logrus.StandardLogger()
	}

	if opts.RedisURL != "" {
		c.rdb = connectRedis(ctx, opts.RedisURL, c.logger)
	}

	c.logger.WithFields(logrus.Fields{
		"ttl":         c.ttl,
		"redis":       c.rdb != nil,
		"max_entries": c.maxEntries,
	}).Debug("cache: initialized")

	interval := opts.CleanupInterval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	go c.cleanupLoop(interval)

	return c
}

func connectRedis(ctx context.Context, url string, logger *logrus.Logger) *redis.Client {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		logger.WithError(err).Warn("cache: invalid redis URL, L2 disabled")
		return nil
	}
	rdb := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.WithError(err).Warn("cache: redis unreachable, L2 disabled")
		_ = rdb.Close()
		return nil
	}
	logger.WithField("addr", redisOpts.Addr).Info("cache: L2 redis connected")
	return rdb
}

// Key builds a deterministic cache key from parts.
// Each part is length-prefixed so distinct part lists never share a key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s", len(p), p)
	}
	return fmt.Sprintf("%s%x", keyPrefix, h.Sum(nil)[:12])
}

// Get tries L1, then L2, decoding the cached JSON into v. An L2 hit populates L1.
func (c *Cache) Get(ctx context.Context, key string, v any) bool {
	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if time.Now().Before(e.expiresAt) && json.Unmarshal(e.data, v) == nil {
			c.logger.WithField("key", key).Debug("cache: L1 hit")
			c.hits.Add(1)
			return true
		}
		c.l1.Delete(key) // expired or corrupt
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil && json.Unmarshal(data, v) == nil {
			c.logger.WithField("key", key).Debug("cache: L2 hit")
			c.hits.Add(1)
			c.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(c.ttl)})
			return true
		}
	}

	c.misses.Add(1)
	return false
}

// Set stores v as JSON in both tiers
func (c *Cache) Set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("cache: value not cacheable")
		return
	}

	c.evictIfNeeded()
	c.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(c.ttl)})

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.WithError(err).Debug("cache: L2 set failed")
		}
	}
}

// Stats returns the current counters
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.count(),
		Redis:   c.rdb != nil,
	}
}

// Close stops the cleanup loop and closes the Redis client
func (c *Cache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

func (c *Cache) count() int {
	n := 0
	c.l1.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// evictIfNeeded removes expired entries, then the oldest, until L1 has room for one more
func (c *Cache) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}
	count := c.count()
	if count < c.maxEntries {
		return
	}

	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return count >= c.maxEntries
	})

	for count >= c.maxEntries {
		var oldestKey any
		oldestAt := now.Add(c.ttl + time.Hour)
		c.l1.Range(func(key, val any) bool {
			// earlier expiry means older entry since every entry shares the TTL
			if e, ok := val.(*entry); ok && e.expiresAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			break
		}
		c.l1.Delete(oldestKey)
		count--
	}
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.l1.Range(func(key, val any) bool {
				if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
					c.l1.Delete(key)
				}
				return true
			})
		}
	}
}
