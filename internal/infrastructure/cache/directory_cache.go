// Package cache caché Redis delante de las lecturas del catálogo.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

const keyPrefix = "pastro:directory:"

var _ repository.DirectoryReader = (*DirectoryCache)(nil)

// DirectoryCache lee el catálogo desde Redis y, si falta o Redis falla, desde next.
// Un fallo de Redis nunca se propaga al caller. MissingCityIDs/MissingServiceIDs no se cachean.
type DirectoryCache struct {
	client *redis.Client
	next   repository.DirectoryReader
	ttl    time.Duration
	log    zerolog.Logger
}

// NewDirectoryCache envuelve next. ttl <= 0 usa 5 minutos.
func NewDirectoryCache(client *redis.Client, next repository.DirectoryReader, ttl time.Duration, log zerolog.Logger) *DirectoryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DirectoryCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *DirectoryCache) ListCities(ctx context.Context) ([]entity.City, error) {
	return cached(ctx, c, keyPrefix+"cities", func() ([]entity.City, error) {
		return c.next.ListCities(ctx)
	})
}

func (c *DirectoryCache) ListServices(ctx context.Context, filter repository.ServiceFilter) ([]entity.Service, error) {
	return cached(ctx, c, servicesKey(filter), func() ([]entity.Service, error) {
		return c.next.ListServices(ctx, filter)
	})
}

func (c *DirectoryCache) ListCategories(ctx context.Context) ([]entity.ServiceCategory, error) {
	return cached(ctx, c, keyPrefix+"categories", func() ([]entity.ServiceCategory, error) {
		return c.next.ListCategories(ctx)
	})
}

func (c *DirectoryCache) MissingCityIDs(ctx context.Context, ids []string) ([]string, error) {
	return c.next.MissingCityIDs(ctx, ids)
}

func (c *DirectoryCache) MissingServiceIDs(ctx context.Context, ids []string) ([]string, error) {
	return c.next.MissingServiceIDs(ctx, ids)
}

// Invalidate borra todas las claves del catálogo (tras un seed).
func (c *DirectoryCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan directory keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete directory keys: %w", err)
	}
	return nil
}

func servicesKey(f repository.ServiceFilter) string {
	return fmt.Sprintf("%sservices:%s:%t", keyPrefix, f.CategoryID, f.IncludeCategory)
}

func cached[T any](ctx context.Context, c *DirectoryCache, key string, load func() ([]T, error)) ([]T, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []T
		if jerr := json.Unmarshal(raw, &out); jerr == nil {
			return out, nil
		}
		c.log.Warn().Str("key", key).Msg("entrada de caché corrupta, se ignora")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible, lectura directa")
		return load()
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(out); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir la caché")
		}
	}
	return out, nil
}
