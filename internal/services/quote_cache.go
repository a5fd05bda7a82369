package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smarttransit/metro-ticketing/internal/models"
)

// QuoteCache stores fare quotes between station pairs. A miss returns (nil, nil).
type QuoteCache interface {
	Get(ctx context.Context, from, to string) (*models.FareQuote, error)
	Set(ctx context.Context, quote *models.FareQuote) error
}

// NoopQuoteCache never caches
type NoopQuoteCache struct{}

func (NoopQuoteCache) Get(context.Context, string, string) (*models.FareQuote, error) { return nil, nil }
func (NoopQuoteCache) Set(context.Context, *models.FareQuote) error                  { return nil }

// RedisQuoteCache keeps quotes in Redis. The network is fixed after startup so
// entries only expire to bound memory.
type RedisQuoteCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisQuoteCache creates a quote cache on an existing client
func NewRedisQuoteCache(client *redis.Client, city string, ttl time.Duration) *RedisQuoteCache {
	return &RedisQuoteCache{
		client: client,
		prefix: "metro:" + strings.ToLower(city) + ":quote",
		ttl:    ttl,
	}
}

// NewRedisClient connects to Redis. It returns nil when the server does not
// answer so callers can run without a cache.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

func (c *RedisQuoteCache) key(from, to string) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, strings.ToLower(from), strings.ToLower(to))
}

// Get returns a cached quote or nil on a miss
func (c *RedisQuoteCache) Get(ctx context.Context, from, to string) (*models.FareQuote, error) {
	data, err := c.client.Get(ctx, c.key(from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("quote cache get failed: %w", err)
	}

	var quote models.FareQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, fmt.Errorf("quote cache entry is corrupt: %w", err)
	}
	return &quote, nil
}

// Set stores a quote
func (c *RedisQuoteCache) Set(ctx context.Context, quote *models.FareQuote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}
	if err := c.client.Set(ctx, c.key(quote.From, quote.To), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("quote cache set failed: %w", err)
	}
	return nil
}
