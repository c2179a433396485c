package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkozlowski/bookstore/pkg/circuitbreaker"
)

// ReportCache is a read-through JSON cache for report results. Redis is an
// optional accelerator here, never a source of truth: every failure (or an
// open breaker) is treated as a miss and the caller recomputes from MySQL.
type ReportCache struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
	ttl     time.Duration
}

// NewReportCache creates the cache with its own circuit breaker so a redis
// outage degrades report latency instead of piling up timeouts.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	cb := circuitbreaker.NewCircuitBreaker("report-cache", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.Requests >= 5 && counts.FailureRate() >= 0.5
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("[breaker] %s: %s -> %s", name, from, to)
	})

	return &ReportCache{client: client, breaker: cb, ttl: ttl}
}

func (c *ReportCache) key(name string) string {
	return fmt.Sprintf("report:%s", name)
}

// Get unmarshals a cached report into dest. The second return value reports
// a hit; misses and redis errors both come back as (false, nil) so report
// reads never fail because of the cache.
func (c *ReportCache) Get(ctx context.Context, name string, dest interface{}) (bool, error) {
	var payload string

	err := c.breaker.Execute(func() error {
		var err error
		payload, err = c.client.Get(ctx, c.key(name)).Result()
		if err == redis.Nil {
			payload = ""
			return nil
		}
		return err
	})
	if err != nil || payload == "" {
		return false, nil
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		// A corrupt entry is dropped and treated as a miss.
		c.Invalidate(ctx, name)
		return false, nil
	}
	return true, nil
}

// Set stores a report result, best effort.
func (c *ReportCache) Set(ctx context.Context, name string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.breaker.Execute(func() error {
		return c.client.Set(ctx, c.key(name), payload, c.ttl).Err()
	})
}

// Invalidate removes a cached report, best effort. Called after writes that
// change what the report would show.
func (c *ReportCache) Invalidate(ctx context.Context, names ...string) {
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = c.key(n)
	}
	_ = c.breaker.Execute(func() error {
		return c.client.Del(ctx, keys...).Err()
	})
}

// BreakerState exposes the breaker state for the health endpoint.
func (c *ReportCache) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}
