package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/config"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	TypingBackendStore = "store"
	TypingBackendRedis = "redis"
)

// AppConfig extends GlobalConfig with the site backend settings.
type AppConfig struct {
	config.GlobalConfig

	StoreDriver    string
	MongoURI       string
	MongoDatabase  string
	MongoOpTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TypingBackend string

	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	EmailFrom      string
	AdminEmail     string
	SiteURL        string
	EmailQueueSize int
	EmailWorkers   int

	RecaptchaSecretKey     string
	AlbumTokenSecret       string
	CORSAllowedOrigins     []string
	RateLimitRPS           int
	SessionCleanupInterval time.Duration
}

func LoadAppConfig() *AppConfig {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}
	cfg := &AppConfig{
		GlobalConfig:   *config.LoadGlobalConfig(),
		StoreDriver:    strings.ToLower(config.GetEnvOrDefault("STORE_DRIVER", StoreDriverMongo)),
		MongoDatabase:  config.GetEnvOrDefault("MONGODB_DATABASE", "nazzelandavionnadb"),
		MongoOpTimeout: config.GetEnvDuration("MONGO_OP_TIMEOUT", 5*time.Second),

		RedisAddr:     config.GetEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword: config.GetEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       config.GetEnvInt("REDIS_DB", 0),
		TypingBackend: strings.ToLower(config.GetEnvOrDefault("TYPING_BACKEND", TypingBackendStore)),

		SMTPHost:       config.GetEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       config.GetEnvInt("SMTP_PORT", 587),
		SMTPUser:       config.GetEnvOrDefault("SMTP_USER", ""),
		SMTPPass:       config.GetEnvOrDefault("SMTP_PASS", ""),
		AdminEmail:     config.GetEnvOrDefault("ADMIN_EMAIL", ""),
		SiteURL:        strings.TrimRight(config.GetEnvOrDefault("SITE_URL", "https://www.nazzelandavionna.site"), "/"),
		EmailQueueSize: config.GetEnvInt("EMAIL_QUEUE_SIZE", 100),
		EmailWorkers:   config.GetEnvInt("EMAIL_WORKERS", 2),

		RecaptchaSecretKey:     config.GetEnvOrDefault("RECAPTCHA_SECRET_KEY", ""),
		AlbumTokenSecret:       config.GetEnv("ALBUM_TOKEN_SECRET"),
		CORSAllowedOrigins:     splitList(config.GetEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),
		RateLimitRPS:           config.GetEnvInt("RATE_LIMIT_RPS", 20),
		SessionCleanupInterval: config.GetEnvDuration("SESSION_CLEANUP_INTERVAL", time.Hour),
	}
	cfg.EmailFrom = config.GetEnvOrDefault("EMAIL_FROM", cfg.SMTPUser)
	if cfg.StoreDriver == StoreDriverMongo {
		cfg.MongoURI = config.GetEnv("MONGODB_URI")
	}
	return cfg
}

// Validate rejects combinations that must not reach a running server.
func (c *AppConfig) Validate() error {
	switch c.StoreDriver {
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required when STORE_DRIVER=%s", StoreDriverMongo)
		}
		if c.MongoOpTimeout <= 0 {
			return fmt.Errorf("MONGO_OP_TIMEOUT must be positive")
		}
	case StoreDriverMemory:
		if c.IsProduction() {
			return fmt.Errorf("STORE_DRIVER=%s is not allowed in production", StoreDriverMemory)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.TypingBackend {
	case TypingBackendStore:
	case TypingBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when TYPING_BACKEND=%s", TypingBackendRedis)
		}
	default:
		return fmt.Errorf("unknown TYPING_BACKEND %q", c.TypingBackend)
	}
	if c.EmailWorkers < 1 {
		return fmt.Errorf("EMAIL_WORKERS must be at least 1")
	}
	if c.EmailQueueSize < 1 {
		return fmt.Errorf("EMAIL_QUEUE_SIZE must be at least 1")
	}
	if c.RateLimitRPS < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS must be at least 1")
	}
	if c.SessionCleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive")
	}
	return nil
}

// SMTPConfigured reports whether outbound email has credentials.
func (c *AppConfig) SMTPConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
