package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
	"github.com/jhoicas/pastro-api/internal/infrastructure/memory"
)

// unreachable cliente contra un puerto sin servidor: toda operación falla rápido.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestDirectoryCache_RedisCaidoLeeDelOrigen(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.Directory().PutCity(entity.City{ID: "city-1", Name: "Prishtina"})
	store.Directory().PutService(entity.Service{ID: "svc-1", Name: "Larje xhamash"})

	client := unreachable()
	defer client.Close()
	c := NewDirectoryCache(client, store.Directory(), time.Minute, zerolog.Nop())

	cities, err := c.ListCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.City{{ID: "city-1", Name: "Prishtina"}}, cities)

	services, err := c.ListServices(ctx, repository.ServiceFilter{})
	require.NoError(t, err)
	require.Len(t, services, 1)

	missing, err := c.MissingCityIDs(ctx, []string{"city-1", "city-x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"city-x"}, missing)
}

func TestDirectoryCache_ErrorDelOrigenSePropaga(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := assert.AnError
	store.InjectFault("ListCategories", boom)

	client := unreachable()
	defer client.Close()
	c := NewDirectoryCache(client, store.Directory(), 0, zerolog.Nop())

	_, err := c.ListCategories(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5*time.Minute, c.ttl)
}

func TestServicesKey(t *testing.T) {
	assert.Equal(t, "pastro:directory:services::false", servicesKey(repository.ServiceFilter{}))
	assert.NotEqual(t,
		servicesKey(repository.ServiceFilter{CategoryID: "a"}),
		servicesKey(repository.ServiceFilter{CategoryID: "a", IncludeCategory: true}))
}
