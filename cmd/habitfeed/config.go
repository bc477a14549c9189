package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/terraincognita07/habitfeed/internal/db"
	"github.com/terraincognita07/habitfeed/internal/services"
	"github.com/terraincognita07/habitfeed/internal/storage"
)

const minSecretKeyLength = 32

type config struct {
	secretKey       string
	port            string
	dbDriver        string
	dbDSN           string
	location        *time.Location
	defaultLanguage string
	cookieSecure    bool
	photoDir        string
	staticDir       string
	logLevel        string
	s3              storage.S3Config
}

func loadConfig() (config, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return config{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return config{}, err
	}
	driver, dsn, err := resolveDatabase()
	if err != nil {
		return config{}, err
	}
	location, err := resolveLocation()
	if err != nil {
		return config{}, err
	}

	return config{
		secretKey:       secretKey,
		port:            port,
		dbDriver:        driver,
		dbDSN:           dsn,
		location:        location,
		defaultLanguage: getEnv("DEFAULT_LANGUAGE", "ru"),
		cookieSecure:    getEnvBool("COOKIE_SECURE", false),
		photoDir:        getEnv("PHOTO_DIR", filepath.Join("data", "uploads")),
		staticDir:       getEnv("STATIC_DIR", filepath.Join("web", "static")),
		logLevel:        getEnv("LOG_LEVEL", "info"),
		s3: storage.S3Config{
			Bucket:    strings.TrimSpace(os.Getenv("S3_BUCKET")),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Endpoint:  strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			AccessKey: strings.TrimSpace(os.Getenv("S3_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
			PublicURL: strings.TrimSpace(os.Getenv("S3_PUBLIC_URL")),
		},
	}, nil
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	switch {
	case secret == "":
		return "", errors.New("SECRET_KEY is required")
	case secret == "change_me_in_production", secret == "replace_with_at_least_32_random_characters":
		return "", errors.New("SECRET_KEY uses a placeholder value")
	case len(secret) < minSecretKeyLength:
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveDatabase() (string, string, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", db.DriverSQLite))
	switch driver {
	case db.DriverSQLite:
		return driver, getEnv("DB_PATH", filepath.Join("data", "habitfeed.db")), nil
	case db.DriverPostgres:
		dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
		if dsn == "" {
			return "", "", errors.New("DATABASE_URL is required for postgres")
		}
		return driver, dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func resolveLocation() (*time.Location, error) {
	name := getEnv("TZ", "UTC")
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", name, err)
	}
	return location, nil
}

// newPhotoStore picks S3 when a bucket is configured and the local directory otherwise.
func newPhotoStore(ctx context.Context, cfg config) (services.PhotoStore, error) {
	if cfg.s3.Bucket != "" {
		return storage.NewS3PhotoStore(ctx, cfg.s3)
	}
	return storage.NewLocalPhotoStore(cfg.photoDir, "/uploads")
}

// csrfMiddlewareConfig protects form posts. JSON API writes and API deletes are exempt because
// browsers cannot send them cross-site without a CORS preflight.
func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "habitfeed_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		Next:           skipCSRFForAPI,
	}
}

func skipCSRFForAPI(c *fiber.Ctx) bool {
	if !strings.HasPrefix(c.Path(), "/api/") {
		return false
	}
	return c.Method() == fiber.MethodDelete || c.Is("json")
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}
