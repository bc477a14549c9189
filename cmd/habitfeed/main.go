package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/habitfeed/internal/api"
	"github.com/terraincognita07/habitfeed/internal/cli"
	"github.com/terraincognita07/habitfeed/internal/db"
	"github.com/terraincognita07/habitfeed/internal/i18n"
	"github.com/terraincognita07/habitfeed/internal/logging"
	"github.com/terraincognita07/habitfeed/internal/metrics"
	"github.com/terraincognita07/habitfeed/internal/services"
	"github.com/terraincognita07/habitfeed/internal/storage"
	"github.com/terraincognita07/habitfeed/internal/templates"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxRequestBodyBytes = 6 << 20

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "reset-password":
			return runResetPassword(args[1:])
		case "import-legacy":
			return runImportLegacy(args[1:])
		default:
			return fmt.Errorf("unknown command %q (expected reset-password or import-legacy)", args[0])
		}
	}
	return serve()
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	time.Local = cfg.location

	log := logging.NewLogger(cfg.logLevel)
	defer func() { _ = log.Sync() }()

	database, err := db.Open(cfg.dbDriver, cfg.dbDSN)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	i18nManager, err := i18n.NewManager(cfg.defaultLanguage, i18n.EmbeddedLocales())
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	photos, err := newPhotoStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("photo store init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.secretKey, templates.Files, cfg.location, i18nManager, cfg.cookieSecure)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	handler.WithLogger(log).WithPhotoStore(photos)

	app := fiber.New(fiber.Config{
		AppName:               "Habitfeed",
		DisableStartupMessage: true,
		BodyLimit:             maxRequestBodyBytes,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(metrics.Middleware)
	app.Get("/metrics", metrics.Handler())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.cookieSecure)))

	app.Static("/static", cfg.staticDir)
	if local, ok := photos.(*storage.LocalPhotoStore); ok {
		app.Static("/uploads", local.Dir())
	}
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("habitfeed listening",
		zap.String("addr", "0.0.0.0:"+cfg.port),
		zap.String("db_driver", cfg.dbDriver),
		zap.String("tz", cfg.location.String()),
	)
	if err := app.Listen(":" + cfg.port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func runResetPassword(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: habitfeed reset-password <email>")
	}
	database, err := openDatabaseFromEnv()
	if err != nil {
		return err
	}
	auth := services.NewAuthService(db.NewUserRepository(database))
	return cli.RunResetPassword(auth, args[0], os.Stdin, os.Stdout)
}

func runImportLegacy(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: habitfeed import-legacy <legacy.db> [photos-dir]")
	}
	photoDir := ""
	if len(args) == 2 {
		photoDir = args[1]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := db.Open(cfg.dbDriver, cfg.dbDSN)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	photos, err := newPhotoStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("photo store init failed: %w", err)
	}

	log := logging.NewLogger(cfg.logLevel)
	defer func() { _ = log.Sync() }()
	return cli.RunImportLegacy(context.Background(), args[0], photoDir, database, photos, log, os.Stdout)
}

// openDatabaseFromEnv opens the store without requiring the server-only settings.
func openDatabaseFromEnv() (*gorm.DB, error) {
	driver, dsn, err := resolveDatabase()
	if err != nil {
		return nil, err
	}
	database, err := db.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}
