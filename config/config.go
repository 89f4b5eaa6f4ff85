package config

import (
	"car_configurator_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = Load()
	})
	return configInstance
}

// Load builds a fresh configuration from the environment. Most callers want GetConfig.
func Load() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:        getEnvAsString("APP_NAME", "Car Configurator"),
			Environment:    getEnvAsString("APP_ENV", "development"),
			Port:           getEnvAsString("APP_PORT", ":8082"),
			PublicURL:      getEnvAsString("APP_PUBLIC_URL", "http://localhost:5173"),
			ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
			WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
			IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
			MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			BodyLimit:      int64(getEnvAsInt("SERVER_BODY_LIMIT", 1<<20)),
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Database: &structs.DatabaseConfig{
			Driver:         getEnvAsString("DB_DRIVER", "pgdriver"),
			Host:           getEnvAsString("DB_HOST", "localhost"),
			Port:           getEnvAsInt("DB_PORT", 5432),
			User:           getEnvAsString("DB_USER", "postgres"),
			Password:       getEnvAsString("DB_PASSWORD", "password"),
			Name:           getEnvAsString("DB_NAME", "car_configurator"),
			SSLMode:        getEnvAsString("DB_SSL_MODE", "disable"),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:       getEnvAsInt("DB_MIN_CONNS", 2),
			MaxLifetime:    getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
			MaxIdleTime:    getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
			ReadTimeout:    getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:   getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			AcquireTimeout: getEnvAsTimeDuration("DB_ACQUIRE_TIMEOUT", 60*time.Second),
			SlowQuery:      getEnvAsTimeDuration("DB_SLOW_QUERY", time.Second),
			AutoMigrate:    getEnvAsBool("DB_AUTO_MIGRATE", true),
			RetryEnabled:   getEnvAsBool("DB_RETRY_ENABLED", false),
		},
		Auth: &structs.AuthConfig{
			AccessTokenSecret: getEnvAsString("JWT_SECRET", "default_access_secret"),
			AccessTokenExpiry: getEnvAsTimeDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
			Issuer:            getEnvAsString("JWT_ISSUER", "car-configurator"),
			BlacklistTTL:      getEnvAsTimeDuration("AUTH_BLACKLIST_TTL", 7*24*time.Hour),
			AdminEmail:        getEnvAsString("ADMIN_EMAIL", ""),
			AdminPassword:     getEnvAsString("ADMIN_PASSWORD", ""),
			AdminName:         getEnvAsString("ADMIN_NAME", "Administrator"),
		},
		Cache: &structs.CacheConfig{
			Enabled:         getEnvAsBool("REDIS_ENABLED", true),
			Address:         getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
			Username:        getEnvAsString("REDIS_USERNAME", ""),
			Password:        getEnvAsString("REDIS_PASSWORD", ""),
			DB:              getEnvAsInt("REDIS_DB", 0),
			PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			MaxIdleConns:    getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
			PoolTimeout:     getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:     getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),
			DialTimeout:     getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:     getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:    getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
			MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond),
			MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond),
			CatalogTTL:      getEnvAsTimeDuration("CACHE_CATALOG_TTL", 10*time.Minute),
		},
		RateLimit: &structs.RateLimitConfig{
			Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", true),
			GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL", 120),
			GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
			AuthLimit:     getEnvAsInt("RATE_LIMIT_AUTH", 10),
			AuthWindow:    getEnvAsTimeDuration("RATE_LIMIT_AUTH_WINDOW", time.Minute),
			AdminLimit:    getEnvAsInt("RATE_LIMIT_ADMIN", 300),
			AdminWindow:   getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", time.Minute),
		},
		Email: &structs.EmailConfig{
			Enabled:      getEnvAsBool("EMAIL_ENABLED", false),
			ApiKey:       getEnvAsString("RESEND_API_KEY", ""),
			From:         getEnvAsString("EMAIL_FROM", "Car Configurator <quotes@example.com>"),
			SupportEmail: getEnvAsString("EMAIL_SUPPORT", "support@example.com"),
		},
		Quotes: &structs.QuotesConfig{
			VerifyTotals: getEnvAsBool("QUOTES_VERIFY_TOTALS", false),
		},
	}
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
