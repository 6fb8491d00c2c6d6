package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pastro-api/internal/application/auth"
	"github.com/jhoicas/pastro-api/internal/application/contact"
	"github.com/jhoicas/pastro-api/internal/application/directory"
	"github.com/jhoicas/pastro-api/internal/application/moderation"
	"github.com/jhoicas/pastro-api/internal/application/notify"
	"github.com/jhoicas/pastro-api/internal/application/onboarding"
	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/application/usecase"
	"github.com/jhoicas/pastro-api/internal/domain/naming"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
	"github.com/jhoicas/pastro-api/internal/infrastructure/cache"
	"github.com/jhoicas/pastro-api/internal/infrastructure/email"
	"github.com/jhoicas/pastro-api/internal/infrastructure/memory"
	"github.com/jhoicas/pastro-api/internal/infrastructure/metrics"
	"github.com/jhoicas/pastro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pastro-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/pastro-api/internal/interfaces/http"
	"github.com/jhoicas/pastro-api/pkg/config"
	"github.com/jhoicas/pastro-api/pkg/logger"
)

// storage repos y runner de la implementación elegida en APP_STORAGE.
type storage struct {
	tx        ports.TxRunner
	users     repository.UserRepository
	companies repository.CompanyRepository
	directory repository.DirectoryRepository
	resets    repository.PasswordResetRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	recorder := metrics.NewRecorder()

	// Catálogo: Redis opcional delante de la BD.
	var directoryReader repository.DirectoryReader = store.directory
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis no responde; la caché fallará hacia la BD")
		}
		directoryReader = cache.NewDirectoryCache(rdb, store.directory,
			time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second, log.Component("cache"))
	}

	// Correos: RabbitMQ si está configurado, si no SMTP (o skipped).
	var sender ports.EmailSender = email.NewSMTPSender(cfg.SMTP)
	if cfg.AMQP.Enabled() {
		publisher, err := queue.NewEmailPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible; los correos salen por SMTP")
		} else {
			defer publisher.Close()
			sender = publisher
		}
	}
	dispatcher := notify.NewDispatcher(sender, recorder, log.Component("notify"), notify.DefaultConfig())

	onboardingUC := onboarding.NewUseCase(store.tx, store.users, store.companies, directoryReader, dispatcher,
		log.Component("onboarding"), onboarding.WithRecorder(recorder))
	moderationUC := moderation.NewUseCase(store.tx, store.companies, dispatcher, recorder, log.Component("moderation"))
	authUC := auth.NewAuthUseCase(store.users, store.companies, dispatcher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	passwordResetUC := auth.NewPasswordResetUseCase(store.users, store.resets, dispatcher, auth.ResetConfig{
		PublicURL: cfg.App.PublicURL,
		TTL:       time.Duration(cfg.Auth.ResetTokenTTLMinutes) * time.Minute,
	}, log.Component("auth"))
	// el formulario de contacto responde con el resultado real del envío
	contactUC := contact.NewUseCase(store.users, store.companies, sender, recorder, log.Component("contact"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestObserver(log.Component("http"), recorder))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pastro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Onboarding:      onboardingUC,
		AuthUC:          authUC,
		PasswordResetUC: passwordResetUC,
		UserUC:          usecase.NewUserUseCase(store.users, store.companies),
		CompanyUC:       usecase.NewCompanyUseCase(store.companies, log.Component("companies")),
		DirectoryUC:     directory.NewUseCase(directoryReader),
		ModerationUC:    moderationUC,
		ContactUC:       contactUC,
		Naming:          naming.Default(),
		JWTSecret:       cfg.JWT.Secret,
		InternalToken:   cfg.Auth.InternalToken,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Los correos en cola salen antes de cerrar la BD y el broker.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("correos pendientes descartados")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == "memory" {
		s := memory.NewStore()
		seeder := directory.NewSeeder(s.Directory(), s.Users(), log.Component("seed"))
		admin := directory.AdminAccount{Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword}
		if _, err := seeder.Seed(ctx, directory.KosovoCatalog(), admin); err != nil {
			return nil, err
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &storage{tx: s, users: s.Users(), companies: s.Companies(), directory: s.Directory(), resets: s.PasswordResets(), close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		users:     postgres.NewUserRepository(pool),
		companies: postgres.NewCompanyRepository(pool),
		directory: postgres.NewDirectoryRepository(pool),
		resets:    postgres.NewPasswordResetRepository(pool),
		close:     pool.Close,
	}, nil
}
