// seed crea el esquema y carga el catálogo de Kosovo (ciudades, categorías, servicios)
// más la cuenta ADMIN de SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD. Se puede ejecutar varias veces.
//
// Uso: go run ./cmd/seed [-schema-only]
package main

import (
	"context"
	"flag"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pastro-api/internal/application/directory"
	"github.com/jhoicas/pastro-api/internal/infrastructure/cache"
	"github.com/jhoicas/pastro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pastro-api/pkg/config"
	"github.com/jhoicas/pastro-api/pkg/logger"
)

func main() {
	schemaOnly := flag.Bool("schema-only", false, "solo aplicar el esquema")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema")
	}
	log.Info().Msg("esquema aplicado")
	if *schemaOnly {
		return
	}

	seeder := directory.NewSeeder(postgres.NewDirectoryRepository(pool), postgres.NewUserRepository(pool), log.Component("seed"))
	report, err := seeder.Seed(ctx, directory.KosovoCatalog(), directory.AdminAccount{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	if report.AdminCreated {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("cuenta admin creada")
	}

	// La API puede tener el catálogo anterior en caché.
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		c := cache.NewDirectoryCache(rdb, nil, 0, log.Component("cache"))
		if err := c.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("no se pudo invalidar la caché del catálogo")
		}
	}
}
