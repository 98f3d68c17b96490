package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"storefront/internal/models"
)

// Client stores carts as JSON values under a per-session/per-user key with a
// sliding TTL. A cart that expires simply reappears empty.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(redisURL string, cartTTL time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: cartTTL}, nil
}

func cartKey(key string) string {
	return "cart:" + key
}

// GetCart returns the cart stored under key, or a fresh empty cart when none
// exists (carts are created lazily on first add).
func (c *Client) GetCart(ctx context.Context, key string) (*models.Cart, error) {
	data, err := c.rdb.Get(ctx, cartKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return models.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	if cart.Lines == nil {
		cart.Lines = map[uint]int{}
	}
	return &cart, nil
}

func (c *Client) SaveCart(ctx context.Context, key string, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := c.rdb.Set(ctx, cartKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (c *Client) DeleteCart(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, cartKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
