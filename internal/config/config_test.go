package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownKeys = []string{
	"PORT", "APP_ENV", "LOG_LEVEL", "STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE", "DATABASE_URL",
	"JWT_SECRET", "TOKEN_TTL", "BCRYPT_COST", "CORS_ALLOW_ORIGINS", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW",
	"REQUIRE_CREATE_ACCESS", "ADMIN_USERNAME", "ADMIN_PASSWORD", "MAX_UPLOAD_SIZE_MB",
	"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET", "R2_PUBLIC_URL", "S3_ENDPOINT", "S3_REGION",
	"RESEND_API_KEY", "EMAIL_FROM_ADDRESS", "EMAIL_FROM_NAME",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range knownKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "workshops", cfg.MongoDatabase)
	assert.Equal(t, time.Duration(0), cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.RequireCreateAccess)
	assert.Equal(t, int64(25<<20), cfg.R2.MaxUploadSize)
	assert.False(t, cfg.R2.Enabled())
	assert.False(t, cfg.Email.Enabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("REQUIRE_CREATE_ACCESS", "true")
	t.Setenv("R2_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET", "bucket")
	t.Setenv("R2_PUBLIC_URL", "https://cdn.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.RequireCreateAccess)
	assert.True(t, cfg.R2.Enabled())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"postgres without url", map[string]string{"JWT_SECRET": "k", "STORE_DRIVER": "postgres"}},
		{"unknown driver", map[string]string{"JWT_SECRET": "k", "STORE_DRIVER": "redis"}},
		{"bad ttl", map[string]string{"JWT_SECRET": "k", "TOKEN_TTL": "soon"}},
		{"negative ttl", map[string]string{"JWT_SECRET": "k", "TOKEN_TTL": "-1h"}},
		{"bad bool", map[string]string{"JWT_SECRET": "k", "REQUIRE_CREATE_ACCESS": "maybe"}},
		{"admin without password", map[string]string{"JWT_SECRET": "k", "ADMIN_USERNAME": "root"}},
		{"memory in production without secret", map[string]string{"STORE_DRIVER": "memory", "APP_ENV": "production"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MemoryDevSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.JWTSecret)
}
