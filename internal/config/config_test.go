package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/config"
)

func validConfig() *AppConfig {
	return &AppConfig{
		GlobalConfig:   config.GlobalConfig{ServerPort: "8080", Environment: "development"},
		StoreDriver:    StoreDriverMemory,
		TypingBackend:  TypingBackendStore,
		EmailQueueSize: 100,
		EmailWorkers:   2,
		MongoOpTimeout: 5 * time.Second,
		RateLimitRPS:   20,

		SessionCleanupInterval: time.Hour,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr string
	}{
		{"memory in development", func(c *AppConfig) {}, ""},
		{"memory in production", func(c *AppConfig) { c.Environment = "production" }, "not allowed in production"},
		{"mongo without uri", func(c *AppConfig) { c.StoreDriver = StoreDriverMongo }, "MONGODB_URI"},
		{"mongo with uri", func(c *AppConfig) { c.StoreDriver = StoreDriverMongo; c.MongoURI = "mongodb://localhost" }, ""},
		{"unknown driver", func(c *AppConfig) { c.StoreDriver = "sqlite" }, "unknown STORE_DRIVER"},
		{"redis typing without addr", func(c *AppConfig) { c.TypingBackend = TypingBackendRedis }, "REDIS_ADDR"},
		{"no workers", func(c *AppConfig) { c.EmailWorkers = 0 }, "EMAIL_WORKERS"},
		{"no queue", func(c *AppConfig) { c.EmailQueueSize = 0 }, "EMAIL_QUEUE_SIZE"},
		{"zero rate limit", func(c *AppConfig) { c.RateLimitRPS = 0 }, "RATE_LIMIT_RPS"},
		{"zero cleanup interval", func(c *AppConfig) { c.SessionCleanupInterval = 0 }, "SESSION_CLEANUP_INTERVAL"},
		{"negative cleanup interval", func(c *AppConfig) { c.SessionCleanupInterval = -time.Hour }, "SESSION_CLEANUP_INTERVAL"},
		{"mongo zero timeout", func(c *AppConfig) {
			c.StoreDriver = StoreDriverMongo
			c.MongoURI = "mongodb://localhost"
			c.MongoOpTimeout = 0
		}, "MONGO_OP_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadAppConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ALBUM_TOKEN_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("SMTP_USER", "site@example.com")
	t.Setenv("TYPING_BACKEND", "store")

	cfg := LoadAppConfig()
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "nazzelandavionnadb", cfg.MongoDatabase)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "site@example.com", cfg.EmailFrom)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.NoError(t, cfg.Validate())
}

func TestLoadAppConfig_MissingSecretPanics(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ALBUM_TOKEN_SECRET", "")
	require.NoError(t, os.Unsetenv("ALBUM_TOKEN_SECRET"))
	assert.PanicsWithValue(t, "critical config missing: ALBUM_TOKEN_SECRET", func() { LoadAppConfig() })
}
