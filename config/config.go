package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/yash200611/launchmate/internal/logging"
)

type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Firebase FirebaseConfig
	App      AppConfig
}

type ServerConfig struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// MongoConfig is fixed at process start; nothing here is hot-reloadable.
type MongoConfig struct {
	URI                    string        `env:"MONGODB_URI"`
	Database               string        `env:"MONGODB_DATABASE" envDefault:"launchmate"`
	MaxPoolSize            uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"10"`
	MinPoolSize            uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"5"`
	RetryWrites            bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`
	TLS                    bool          `env:"MONGODB_TLS" envDefault:"false"`
	ConnectTimeout         time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"5s"`
	ServerSelectionTimeout time.Duration `env:"MONGODB_SERVER_SELECTION_TIMEOUT" envDefault:"5s"`
	ReconnectDelay         time.Duration `env:"MONGODB_RECONNECT_DELAY" envDefault:"5s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Enabled reports whether a redis address was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"token"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	RateLimit    float64       `env:"AUTH_RATE_LIMIT" envDefault:"5"`
	RateBurst    int           `env:"AUTH_RATE_BURST" envDefault:"10"`
	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"10"`
}

type FirebaseConfig struct {
	CredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON     bool   `env:"LOG_JSON" envDefault:"false"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"launchmate-api"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		logging.Logger.Info().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if strings.TrimSpace(c.Mongo.URI) == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}

	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE is required")
	}

	if c.Mongo.MaxPoolSize > 0 && c.Mongo.MinPoolSize > c.Mongo.MaxPoolSize {
		return fmt.Errorf("MONGODB_MIN_POOL_SIZE (%d) exceeds MONGODB_MAX_POOL_SIZE (%d)",
			c.Mongo.MinPoolSize, c.Mongo.MaxPoolSize)
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
