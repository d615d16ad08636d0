package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"siteapi/internal/cache"
	"siteapi/internal/cms"
	"siteapi/internal/config"
	"siteapi/internal/database"
	"siteapi/internal/database/migration"
	handlers "siteapi/internal/http/handler"
	"siteapi/internal/http/middleware"
	smail "siteapi/internal/mail"
	"siteapi/internal/otel"
	"siteapi/internal/repository"
	"siteapi/internal/repository/postgres"
	"siteapi/internal/service"
	"siteapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	// Tracing is optional; Init degrades to a noop provider on failure.
	shutdownTracing, err := otel.Init(context.Background(), loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Content store client. When no project is configured the resolver
	// serves the static catalog alone.
	cmsClient, err := cms.New(cfg.CMS)
	if err != nil {
		log.Printf("content store disabled: %v", err)
		cmsClient = cms.Disabled()
	}

	// Submission archive is optional.
	var db *sql.DB
	var subRepo repository.SubmissionRepository
	if cfg.Database.Host != "" {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(context.Background(), db, loc, cfg.Database.Host); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		subRepo = postgres.NewSubmissionPostgres(db)
	} else {
		log.Printf("submission archive disabled: no database configured")
	}

	// Render cache: Redis when configured, in-process otherwise.
	cacheTTL := time.Duration(cfg.Redis.TTLSec) * time.Second
	var redisClient *redis.Client
	var pageCache cache.PageCache
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pageCache = cache.NewRedis(redisClient, "page:", cacheTTL)
	} else {
		log.Printf("render cache is in-process: no redis configured")
		pageCache = cache.NewMemory(cacheTTL)
	}

	// Notification email is optional.
	mailer, err := smail.New(cfg.Mail)
	if err != nil {
		log.Printf("mail disabled: %v", err)
		mailer = nil
	}

	// Asset mirror is optional.
	var assetSvc service.AssetService
	if cfg.MinIO.Endpoint != "" {
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
		assetSvc = service.NewAssetService(cmsClient, objStore)
	} else {
		log.Printf("asset mirror disabled: no object storage configured")
	}

	resolver := service.NewPageResolver(cmsClient)
	revalidator := service.NewRevalidator(pageCache)

	var contactCMS cms.Client
	if cfg.CMS.WriteToken != "" {
		contactCMS = cmsClient
	}
	contactSvc := service.NewContactService(contactCMS, subRepo, mailer, cfg.Mail.From, cfg.Mail.To)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())(c.Context())
		return nil
	})

	contactLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:             db,
		Redis:          redisClient,
		Cache:          pageCache,
		Resolver:       resolver,
		Contact:        contactSvc,
		Revalidator:    revalidator,
		Assets:         assetSvc,
		Submissions:    subRepo,
		Secrets:        cfg.Secrets,
		SiteURL:        cfg.SiteURL,
		ContactLimiter: contactLimiter.Handler(),
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
