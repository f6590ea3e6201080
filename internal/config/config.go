package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Reference token store backends
const (
	ReferenceStoreMemory   = "memory"
	ReferenceStoreRedis    = "redis"
	ReferenceStoreRueidis  = "rueidis"
	ReferenceStoreDatabase = "database"
)

// User liveness modes
const (
	UserServiceNone     = "none"
	UserServiceDatabase = "database"
	UserServiceHTTPAPI  = "http_api"
)

// Rate limit stores
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Log output formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Server settings
	ServerAddr      string
	ShutdownTimeout time.Duration

	// Token trust
	TokenIssuer       string
	TokenAudience     string
	JWTSecret         string
	JWTPublicKeyFile  string
	JWTPrivateKeyFile string // only used by the mint command
	JWTKeyID          string
	JWTAlgorithms     []string

	// Reference tokens
	ReferenceTokenStore         string // memory, redis, rueidis or database
	ReferenceTokenCacheDuration time.Duration
	CacheCleanupInterval        time.Duration
	TokenCleanupInterval        time.Duration

	// Redis
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string
	SeedFile       string

	// User liveness
	UserServiceMode           string // none, database or http_api
	UserAPIURL                string
	UserAPITimeout            time.Duration
	UserAPIMaxRetries         int
	UserAPIRetryDelay         time.Duration
	UserAPIMaxRetryDelay      time.Duration
	UserAPIAuthMode           string // none, simple or hmac
	UserAPISecret             string
	UserAPIAuthHeader         string // simple mode header, X-API-Secret when empty
	UserAPIInsecureSkipVerify bool

	// Client lookup cache
	ClientCacheTTL time.Duration

	// Rate limiting of the validation endpoint
	RateLimitEnabled   bool
	RateLimitPerMinute int
	RateLimitStore     string // memory or redis

	// Observability
	MetricsEnabled             bool
	MetricsToken               string // empty leaves /metrics open
	MetricsGaugeUpdateInterval time.Duration
	LogLevel                   string
	LogFormat                  string
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	// Determine database driver and DSN
	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", "tokenguard.db")
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:      getEnv("SERVER_ADDR", ":8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		TokenIssuer:       getEnv("TOKEN_ISSUER", ""),
		TokenAudience:     getEnv("TOKEN_AUDIENCE", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTPublicKeyFile:  getEnv("JWT_PUBLIC_KEY_FILE", ""),
		JWTPrivateKeyFile: getEnv("JWT_PRIVATE_KEY_FILE", ""),
		JWTKeyID:          getEnv("JWT_KEY_ID", ""),
		JWTAlgorithms:     getEnvSlice("JWT_ALGORITHMS", nil),

		ReferenceTokenStore:         getEnv("REFERENCE_TOKEN_STORE", ReferenceStoreMemory),
		ReferenceTokenCacheDuration: getEnvDuration("REFERENCE_TOKEN_CACHE_DURATION", 5*time.Minute),
		CacheCleanupInterval:        getEnvDuration("CACHE_CLEANUP_INTERVAL", time.Minute),
		TokenCleanupInterval:        getEnvDuration("TOKEN_CLEANUP_INTERVAL", 10*time.Minute),

		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "tokenguard:"),

		DatabaseDriver: driver,
		DatabaseDSN:    dsn,
		SeedFile:       getEnv("SEED_FILE", ""),

		UserServiceMode:           getEnv("USER_SERVICE_MODE", UserServiceDatabase),
		UserAPIURL:                getEnv("USER_API_URL", ""),
		UserAPITimeout:            getEnvDuration("USER_API_TIMEOUT", 5*time.Second),
		UserAPIMaxRetries:         getEnvInt("USER_API_MAX_RETRIES", 2),
		UserAPIRetryDelay:         getEnvDuration("USER_API_RETRY_DELAY", 200*time.Millisecond),
		UserAPIMaxRetryDelay:      getEnvDuration("USER_API_MAX_RETRY_DELAY", 2*time.Second),
		UserAPIAuthMode:           getEnv("USER_API_AUTH_MODE", "none"),
		UserAPISecret:             getEnv("USER_API_SECRET", ""),
		UserAPIAuthHeader:         getEnv("USER_API_AUTH_HEADER", ""),
		UserAPIInsecureSkipVerify: getEnvBool("USER_API_INSECURE_SKIP_VERIFY", false),

		ClientCacheTTL: getEnvDuration("CLIENT_CACHE_TTL", time.Minute),

		RateLimitEnabled:   getEnvBool("RATE_LIMIT_ENABLED", false),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 600),
		RateLimitStore:     getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),

		MetricsEnabled:             getEnvBool("METRICS_ENABLED", true),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", 30*time.Second),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		LogFormat:                  getEnv("LOG_FORMAT", LogFormatText),
	}
}

// Validate rejects unknown enum values and settings that cannot work together.
func (c *Config) Validate() error {
	if !slices.Contains([]string{
		ReferenceStoreMemory, ReferenceStoreRedis, ReferenceStoreRueidis, ReferenceStoreDatabase,
	}, c.ReferenceTokenStore) {
		return fmt.Errorf(
			"%w: invalid REFERENCE_TOKEN_STORE value: %q (must be memory, redis, rueidis or database)",
			ErrInvalidConfig, c.ReferenceTokenStore,
		)
	}
	if c.ReferenceTokenCacheDuration <= 0 {
		return fmt.Errorf(
			"%w: REFERENCE_TOKEN_CACHE_DURATION must be greater than zero",
			ErrInvalidConfig,
		)
	}
	if (c.ReferenceTokenStore == ReferenceStoreRedis ||
		c.ReferenceTokenStore == ReferenceStoreRueidis) && c.RedisAddr == "" {
		return fmt.Errorf(
			"%w: REDIS_ADDR is required for REFERENCE_TOKEN_STORE=%s",
			ErrInvalidConfig, c.ReferenceTokenStore,
		)
	}

	if c.DatabaseDriver != "sqlite" && c.DatabaseDriver != "postgres" {
		return fmt.Errorf(
			"%w: invalid DATABASE_DRIVER value: %q (must be sqlite or postgres)",
			ErrInvalidConfig, c.DatabaseDriver,
		)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("%w: DATABASE_DSN is required", ErrInvalidConfig)
	}

	switch c.UserServiceMode {
	case UserServiceNone, UserServiceDatabase:
	case UserServiceHTTPAPI:
		if c.UserAPIURL == "" {
			return fmt.Errorf(
				"%w: USER_API_URL is required when USER_SERVICE_MODE=http_api",
				ErrInvalidConfig,
			)
		}
		switch c.UserAPIAuthMode {
		case "", "none":
		case "simple", "hmac":
			if c.UserAPISecret == "" {
				return fmt.Errorf(
					"%w: USER_API_SECRET is required when USER_API_AUTH_MODE=%s",
					ErrInvalidConfig, c.UserAPIAuthMode,
				)
			}
		default:
			return fmt.Errorf(
				"%w: invalid USER_API_AUTH_MODE value: %q (must be none, simple or hmac)",
				ErrInvalidConfig, c.UserAPIAuthMode,
			)
		}
	default:
		return fmt.Errorf(
			"%w: invalid USER_SERVICE_MODE value: %q (must be none, database or http_api)",
			ErrInvalidConfig, c.UserServiceMode,
		)
	}

	if c.RateLimitEnabled {
		if c.RateLimitPerMinute <= 0 {
			return fmt.Errorf(
				"%w: RATE_LIMIT_PER_MINUTE must be greater than zero",
				ErrInvalidConfig,
			)
		}
		if c.RateLimitStore != RateLimitStoreMemory && c.RateLimitStore != RateLimitStoreRedis {
			return fmt.Errorf(
				"%w: invalid RATE_LIMIT_STORE value: %q (must be memory or redis)",
				ErrInvalidConfig, c.RateLimitStore,
			)
		}
		if c.RateLimitStore == RateLimitStoreRedis && c.RedisAddr == "" {
			return fmt.Errorf(
				"%w: REDIS_ADDR is required for RATE_LIMIT_STORE=redis",
				ErrInvalidConfig,
			)
		}
	}

	if c.HasSigningKeys() && (c.TokenIssuer == "" || c.TokenAudience == "") {
		return fmt.Errorf(
			"%w: TOKEN_ISSUER and TOKEN_AUDIENCE are required when JWT keys are configured",
			ErrInvalidConfig,
		)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf(
			"%w: invalid LOG_FORMAT value: %q (must be text or json)",
			ErrInvalidConfig, c.LogFormat,
		)
	}
	return nil
}

// HasSigningKeys reports whether self-contained tokens can be verified.
func (c *Config) HasSigningKeys() bool {
	return c.JWTSecret != "" || c.JWTPublicKeyFile != ""
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: invalid LOG_LEVEL value: %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		if parts := splitAndTrim(value, ","); len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
