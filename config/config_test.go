package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/billsphere-test.db")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/billsphere-test.db", cfg.DSN())
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.True(t, cfg.SeedDemo)
	assert.False(t, cfg.IsProduction())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBDriver: "postgres", DBHost: "db", DBPort: "5432", DBUser: "app", DBPassword: "pw", DBName: "billsphere"}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=billsphere sslmode=disable", cfg.DSN())
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := OpenDatabase("mysql", "")
	assert.Error(t, err)
}

func TestGoogleOAuthEnabled(t *testing.T) {
	prevCfg, prevOAuth := AppConfig, GoogleOAuthConfig
	t.Cleanup(func() { AppConfig, GoogleOAuthConfig = prevCfg, prevOAuth })

	GoogleOAuthConfig = nil
	assert.False(t, GoogleOAuthEnabled())

	AppConfig = &Config{GoogleClientID: "client", GoogleRedirectURL: "http://localhost/cb"}
	InitGoogleOAuth()
	assert.True(t, GoogleOAuthEnabled())
	assert.Equal(t, "http://localhost/cb", GoogleOAuthConfig.RedirectURL)
}
