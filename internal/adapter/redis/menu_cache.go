// Package redis caches the menu listing. The catalog service invalidates the
// cache on every menu mutation, so readers only ever see the current listing
// or fall through to the repository.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kitchenpos/internal/config"
	"kitchenpos/internal/domain"
	"kitchenpos/internal/interfaces"
)

const menusKey = "kitchenpos:menus"

type MenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMenuCache(cfg config.RedisConfig) *MenuCache {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	})
	return &MenuCache{client: client, ttl: cfg.TTL}
}

var _ interfaces.MenuCache = (*MenuCache)(nil)

func (c *MenuCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *MenuCache) GetMenus(ctx context.Context) ([]domain.Menu, error) {
	data, err := c.client.Get(ctx, menusKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read menu cache: %w", err)
	}

	var menus []domain.Menu
	if err := json.Unmarshal(data, &menus); err != nil {
		return nil, fmt.Errorf("failed to decode cached menus: %w", err)
	}
	return menus, nil
}

func (c *MenuCache) SetMenus(ctx context.Context, menus []domain.Menu) error {
	data, err := json.Marshal(menus)
	if err != nil {
		return fmt.Errorf("failed to encode menus: %w", err)
	}
	return c.client.Set(ctx, menusKey, data, c.ttl).Err()
}

func (c *MenuCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, menusKey).Err()
}

func (c *MenuCache) Close() error {
	return c.client.Close()
}
