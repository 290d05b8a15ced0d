package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"drives3/internal/config"
	"drives3/internal/credentials"
	"drives3/internal/database"
	"drives3/internal/database/migration"
	handlers "drives3/internal/http/handler"
	"drives3/internal/http/middleware"
	"drives3/internal/logging"
	"drives3/internal/otel"
	"drives3/internal/repository/postgres"
	"drives3/internal/service"
	"drives3/internal/storage"
)

var cfgFile string

// @title Drive S3 Gateway
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	root := &cobra.Command{
		Use:           "drives3",
		Short:         "S3-style buckets and objects on top of Google Drive",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (overrides CONFIG_FILE)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE:  runMigrate,
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, zerolog.Logger, error) {
	if cfgFile != "" {
		os.Setenv("CONFIG_FILE", cfgFile)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat), nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	dsn, err := database.BuildPostgresDSN(cfg.Database)
	if err != nil {
		return err
	}
	return migration.Up(dsn, log)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Str("event", "tracing_shutdown_failed").Msg("flush spans")
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		dsn, err := database.BuildPostgresDSN(cfg.Database)
		if err != nil {
			return err
		}
		if err := migration.Up(dsn, log); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	driveMetrics, err := storage.NewMetrics(reg)
	if err != nil {
		return err
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	users := postgres.NewUserPostgres(db)
	buckets := postgres.NewBucketPostgres(db)
	objects := postgres.NewObjectPostgres(db)

	oauthCfg := credentials.GoogleOAuthConfig(cfg.Google)
	authorizer := credentials.NewManager(oauthCfg, users, func(ctx context.Context, client *http.Client) (storage.Remote, error) {
		return storage.NewGoogleDrive(ctx, client, driveMetrics)
	}, log)
	identity, err := credentials.NewGoogleIdentityVerifier(ctx, cfg.Google.ClientID)
	if err != nil {
		return fmt.Errorf("google identity provider: %w", err)
	}

	svc := handlers.Services{
		Auth:    service.NewAuthService(users, oauthCfg, identity, cfg.Session, log),
		Buckets: service.NewBucketService(buckets, objects, authorizer, log),
		Objects: service.NewObjectService(buckets, objects, authorizer, log),
		Presign: service.NewPresignService(buckets, objects, users, authorizer, cfg.PresignTTL, log),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.UploadMaxMB * 1024 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics"
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log, time.Local))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(app, db, svc, cfg.PublicBaseURL)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("event", "server_start").Str("addr", ":"+cfg.Port).Msg("listening")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Str("event", "server_stop").Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
