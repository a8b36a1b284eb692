// Package cache keeps short-lived read models in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/redis/go-redis/v9"
)

const listingsKey = "listings:all"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient dials Redis and checks the connection
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Listings caches the full projected listing collection under one key
type Listings struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListings(client *redis.Client, ttl time.Duration) *Listings {
	return &Listings{client: client, ttl: ttl}
}

// Get returns the cached collection. ok is false on a miss.
func (c *Listings) Get(ctx context.Context) ([]models.Listing, bool, error) {
	val, err := c.client.Get(ctx, listingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read listings cache: %w", err)
	}

	var listings []models.Listing
	if err := json.Unmarshal(val, &listings); err != nil {
		return nil, false, fmt.Errorf("failed to decode listings cache: %w", err)
	}
	return listings, true, nil
}

func (c *Listings) Set(ctx context.Context, listings []models.Listing) error {
	val, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("failed to encode listings: %w", err)
	}
	if err := c.client.Set(ctx, listingsKey, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write listings cache: %w", err)
	}
	return nil
}

func (c *Listings) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listingsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listings cache: %w", err)
	}
	return nil
}
