package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ReferenceTokenStore:         ReferenceStoreMemory,
		ReferenceTokenCacheDuration: 5 * time.Minute,
		RedisAddr:                   "localhost:6379",
		DatabaseDriver:              "sqlite",
		DatabaseDSN:                 "tokenguard.db",
		UserServiceMode:             UserServiceDatabase,
		LogLevel:                    "info",
		LogFormat:                   LogFormatText,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:   "valid memory store",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid rueidis store",
			mutate: func(c *Config) { c.ReferenceTokenStore = ReferenceStoreRueidis },
		},
		{
			name:   "valid database store",
			mutate: func(c *Config) { c.ReferenceTokenStore = ReferenceStoreDatabase },
		},
		{
			name:     "invalid store - typo",
			mutate:   func(c *Config) { c.ReferenceTokenStore = "reddis" },
			errorMsg: `invalid REFERENCE_TOKEN_STORE value: "reddis"`,
		},
		{
			name:     "zero cache duration",
			mutate:   func(c *Config) { c.ReferenceTokenCacheDuration = 0 },
			errorMsg: "REFERENCE_TOKEN_CACHE_DURATION must be greater than zero",
		},
		{
			name: "redis without address",
			mutate: func(c *Config) {
				c.ReferenceTokenStore = ReferenceStoreRedis
				c.RedisAddr = ""
			},
			errorMsg: "REDIS_ADDR is required for REFERENCE_TOKEN_STORE=redis",
		},
		{
			name:     "unknown database driver",
			mutate:   func(c *Config) { c.DatabaseDriver = "mysql" },
			errorMsg: `invalid DATABASE_DRIVER value: "mysql"`,
		},
		{
			name:     "missing dsn",
			mutate:   func(c *Config) { c.DatabaseDSN = "" },
			errorMsg: "DATABASE_DSN is required",
		},
		{
			name:   "user service disabled",
			mutate: func(c *Config) { c.UserServiceMode = UserServiceNone },
		},
		{
			name:     "http_api without url",
			mutate:   func(c *Config) { c.UserServiceMode = UserServiceHTTPAPI },
			errorMsg: "USER_API_URL is required",
		},
		{
			name: "http_api with url",
			mutate: func(c *Config) {
				c.UserServiceMode = UserServiceHTTPAPI
				c.UserAPIURL = "http://users.internal/active"
			},
		},
		{
			name: "http_api hmac without secret",
			mutate: func(c *Config) {
				c.UserServiceMode = UserServiceHTTPAPI
				c.UserAPIURL = "http://users.internal/active"
				c.UserAPIAuthMode = "hmac"
			},
			errorMsg: "USER_API_SECRET is required when USER_API_AUTH_MODE=hmac",
		},
		{
			name: "http_api unknown auth mode",
			mutate: func(c *Config) {
				c.UserServiceMode = UserServiceHTTPAPI
				c.UserAPIURL = "http://users.internal/active"
				c.UserAPIAuthMode = "oauth"
			},
			errorMsg: `invalid USER_API_AUTH_MODE value: "oauth"`,
		},
		{
			name:     "unknown user mode",
			mutate:   func(c *Config) { c.UserServiceMode = "ldap" },
			errorMsg: `invalid USER_SERVICE_MODE value: "ldap"`,
		},
		{
			name:     "keys without issuer",
			mutate:   func(c *Config) { c.JWTSecret = "secret" },
			errorMsg: "TOKEN_ISSUER and TOKEN_AUDIENCE are required",
		},
		{
			name: "keys with issuer and audience",
			mutate: func(c *Config) {
				c.JWTSecret = "secret"
				c.TokenIssuer = "https://idsrv3.com"
				c.TokenAudience = "https://idsrv3.com/resources"
			},
		},
		{
			name: "rate limit on redis",
			mutate: func(c *Config) {
				c.RateLimitEnabled = true
				c.RateLimitPerMinute = 60
				c.RateLimitStore = RateLimitStoreRedis
			},
		},
		{
			name: "rate limit without budget",
			mutate: func(c *Config) {
				c.RateLimitEnabled = true
				c.RateLimitStore = RateLimitStoreMemory
			},
			errorMsg: "RATE_LIMIT_PER_MINUTE must be greater than zero",
		},
		{
			name: "rate limit unknown store",
			mutate: func(c *Config) {
				c.RateLimitEnabled = true
				c.RateLimitPerMinute = 60
				c.RateLimitStore = "memcached"
			},
			errorMsg: `invalid RATE_LIMIT_STORE value: "memcached"`,
		},
		{
			name: "rate limit disabled ignores store",
			mutate: func(c *Config) {
				c.RateLimitStore = "memcached"
			},
		},
		{
			name:     "bad log level",
			mutate:   func(c *Config) { c.LogLevel = "verbose" },
			errorMsg: `invalid LOG_LEVEL value: "verbose"`,
		},
		{
			name:     "bad log format",
			mutate:   func(c *Config) { c.LogFormat = "xml" },
			errorMsg: `invalid LOG_FORMAT value: "xml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, ReferenceStoreMemory, cfg.ReferenceTokenStore)
	assert.Equal(t, 5*time.Minute, cfg.ReferenceTokenCacheDuration)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "tokenguard.db", cfg.DatabaseDSN)
	assert.Equal(t, UserServiceDatabase, cfg.UserServiceMode)
	assert.Equal(t, time.Minute, cfg.ClientCacheTTL)
	assert.True(t, cfg.MetricsEnabled)
	assert.Empty(t, cfg.MetricsToken)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
	assert.False(t, cfg.HasSigningKeys())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("TOKEN_ISSUER", "https://idsrv3.com")
	t.Setenv("TOKEN_AUDIENCE", "https://idsrv3.com/resources")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ALGORITHMS", "HS256, HS512,")
	t.Setenv("REFERENCE_TOKEN_STORE", "redis")
	t.Setenv("REFERENCE_TOKEN_CACHE_DURATION", "90s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=db user=app dbname=app")
	t.Setenv("USER_SERVICE_MODE", "http_api")
	t.Setenv("USER_API_URL", "http://users.internal/active")
	t.Setenv("USER_API_MAX_RETRIES", "not-a-number")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_ENABLED", "1")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	t.Setenv("METRICS_TOKEN", "scrape-me")
	t.Setenv("USER_API_AUTH_HEADER", "X-Internal-Auth")
	t.Setenv("USER_API_MAX_RETRY_DELAY", "3s")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, []string{"HS256", "HS512"}, cfg.JWTAlgorithms)
	assert.Equal(t, ReferenceStoreRedis, cfg.ReferenceTokenStore)
	assert.Equal(t, 90*time.Second, cfg.ReferenceTokenCacheDuration)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "host=db user=app dbname=app", cfg.DatabaseDSN)
	assert.Equal(t, 2, cfg.UserAPIMaxRetries, "unparsable ints fall back to the default")
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "scrape-me", cfg.MetricsToken)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, "X-Internal-Auth", cfg.UserAPIAuthHeader)
	assert.Equal(t, 3*time.Second, cfg.UserAPIMaxRetryDelay)
	assert.False(t, cfg.UserAPIInsecureSkipVerify)
	assert.True(t, cfg.HasSigningKeys())
	require.NoError(t, cfg.Validate())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_PostgresWithoutDSN(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")

	cfg := Load()

	assert.Empty(t, cfg.DatabaseDSN)
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_DSN is required")
}
