package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/lodging-service/internal/domain"
)

const hotelsKey = "lodging:hotels:all"

// HotelCache stores the hotel catalogue in Redis as JSON.
type HotelCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHotelCache returns a cache with the given entry lifetime.
func NewHotelCache(client *redis.Client, ttl time.Duration) *HotelCache {
	return &HotelCache{client: client, ttl: ttl}
}

// GetHotels returns the cached catalogue; ok is false on a miss.
func (c *HotelCache) GetHotels(ctx context.Context) ([]domain.Hotel, bool, error) {
	raw, err := c.client.Get(ctx, hotelsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get hotels: %w", err)
	}
	var hotels []domain.Hotel
	if err := json.Unmarshal(raw, &hotels); err != nil {
		return nil, false, fmt.Errorf("decode hotels: %w", err)
	}
	return hotels, true, nil
}

// SetHotels replaces the cached catalogue.
func (c *HotelCache) SetHotels(ctx context.Context, hotels []domain.Hotel) error {
	raw, err := json.Marshal(hotels)
	if err != nil {
		return fmt.Errorf("encode hotels: %w", err)
	}
	if err := c.client.Set(ctx, hotelsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set hotels: %w", err)
	}
	return nil
}

// Invalidate drops the cached catalogue.
func (c *HotelCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, hotelsKey).Err()
}
