package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// devJWTSecret signs tokens outside production when JWT_SECRET is unset.
const devJWTSecret = "secret_key"

type Config struct {
	Env      string
	HTTPAddr string

	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	JWTSecret string
	TokenTTL  time.Duration

	// APIBaseURL is where the HTML views reach the JSON API.
	APIBaseURL string

	BotToken     string
	NotifyChatID int64

	MigrationsDir string
}

func Load() (*Config, error) {
	rootDir, err := ProjectRoot()
	if err != nil {
		rootDir = "."
	}

	// .env is optional; real environment variables take precedence over it
	err = godotenv.Load(filepath.Join(rootDir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}

	var chatID int64
	if v := os.Getenv("NOTIFY_CHAT_ID"); v != "" {
		chatID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("NOTIFY_CHAT_ID: %w", err)
		}
	}

	env := getenv("ENV", "development")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if env == "production" {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		secret = devJWTSecret
	}

	migrationsDir := getenv("MIGRATIONS_DIR", "migrations")
	if !filepath.IsAbs(migrationsDir) {
		migrationsDir = filepath.Join(rootDir, migrationsDir)
	}

	return &Config{
		Env:      env,
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		DBHost:    getenv("DB_HOST", "localhost"),
		DBPort:    getenv("DB_PORT", "5432"),
		DBUser:    getenv("DB_USER", "postgres"),
		DBPass:    os.Getenv("DB_PASSWORD"),
		DBName:    getenv("DB_NAME", "storefront"),
		DBSSLMode: getenv("DB_SSLMODE", "disable"),

		JWTSecret: secret,
		TokenTTL:  ttl,

		APIBaseURL: getenv("API_BASE_URL", "http://localhost:8080"),

		BotToken:     os.Getenv("BOT_TOKEN"),
		NotifyChatID: chatID,

		MigrationsDir: migrationsDir,
	}, nil
}

// DSN is the lib/pq key/value connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName, c.DBSSLMode,
	)
}

// MigrateURL is the same database in the URL form golang-migrate expects.
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ProjectRoot walks up from the working directory to the directory holding go.mod.
func ProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}

		parent := filepath.Dir(wd)
		if parent == wd {
			return "", os.ErrNotExist
		}
		wd = parent
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
