package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Email     *EmailConfig
	Quotes    *QuotesConfig
}

type ServerConfig struct {
	AppName        string        // Car Configurator
	Environment    string        // development, production
	Port           string        // :8082
	PublicURL      string        // used in email links
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int   // in bytes
	BodyLimit      int64 // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

type DatabaseConfig struct {
	Driver         string // pgdriver, pgx, memory
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int
	MinConns       int
	MaxLifetime    time.Duration
	MaxIdleTime    time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AcquireTimeout time.Duration
	SlowQuery      time.Duration
	AutoMigrate    bool
	RetryEnabled   bool
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
	BlacklistTTL      time.Duration
	AdminEmail        string
	AdminPassword     string
	AdminName         string
}

type CacheConfig struct {
	Enabled         bool
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	CatalogTTL      time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	GeneralLimit  int
	GeneralWindow time.Duration
	AuthLimit     int
	AuthWindow    time.Duration
	AdminLimit    int
	AdminWindow   time.Duration
}

type EmailConfig struct {
	Enabled      bool
	ApiKey       string
	From         string
	SupportEmail string
}

type QuotesConfig struct {
	// VerifyTotals recomputes subtotal and total from the live catalog before persisting.
	VerifyTotals bool
}
