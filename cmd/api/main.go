package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/auth"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/catalogo"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/ventas"
	infracache "github.com/gestormotorep-source/Gestor-moto-sub003/internal/infrastructure/cache"
	infrapdf "github.com/gestormotorep-source/Gestor-moto-sub003/internal/infrastructure/pdf"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/infrastructure/postgres"
	httpRouter "github.com/gestormotorep-source/Gestor-moto-sub003/internal/interfaces/http"
	"github.com/gestormotorep-source/Gestor-moto-sub003/pkg/config"
	"github.com/gestormotorep-source/Gestor-moto-sub003/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:      cfg.App.Env,
		Level:    "info",
		Servicio: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	movRepo := postgres.NewMovimientoRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache Redis del lot ledger. Sin REDIS_ADDR los previews leen PostgreSQL directo.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, cache del ledger deshabilitado")
			redisClient = nil
		}
	}
	ledger := infracache.NewLoteCache(loteRepo, redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)

	motor := ventas.NewMotorVentas(txRunner, ledger, productoRepo, ventaRepo, pagoRepo, movRepo)
	reciboGenerator := infrapdf.NewMarotoReciboGenerator(cfg.App.NombreNegocio)
	pdfUC := ventas.NewPDFUseCase(motor, productoRepo, reciboGenerator)
	catalogoUC := catalogo.NewCatalogoUseCase(productoRepo, loteRepo, movRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestor Moto API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogoUC: catalogoUC,
		Motor:      motor,
		PDFUC:      pdfUC,
		JWTSecret:  cfg.JWT.Secret,
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

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("cierre de Redis")
		}
	}

	log.Info().Msg("aplicación detenida")
}
