package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DB_HOST", "TOKEN_TTL", "NOTIFY_CHAT_ID", "BOT_TOKEN", "ENV", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Zero(t, cfg.NotifyChatID)
	assert.Empty(t, cfg.BotToken)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("NOTIFY_CHAT_ID", "-100123")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, int64(-100123), cfg.NotifyChatID)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENV", "production")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("NOTIFY_CHAT_ID", "admins")
	_, err = Load()
	assert.Error(t, err)
}

func TestConnectionStrings(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5433", DBUser: "shop", DBPass: "p@ss",
		DBName: "store", DBSSLMode: "disable",
	}

	assert.Equal(t, "host=db port=5433 user=shop password=p@ss dbname=store sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://shop:p%40ss@db:5433/store?sslmode=disable", cfg.MigrateURL())
}
