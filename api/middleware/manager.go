package middleware

import (
	"car_configurator_server/structs"
	"context"
	"time"

	"github.com/MonkyMars/gecho"
)

// TokenVerifier is implemented by services.AuthService.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*structs.AuthClaims, error)
}

// RateLimitCounter is implemented by services.CacheService.
type RateLimitCounter interface {
	IncrementRateLimit(ctx context.Context, ip, endpoint string, window time.Duration) (int, error)
}

type Middleware struct {
	logger   *gecho.Logger
	cfg      *structs.Config
	verifier TokenVerifier
	limiter  RateLimitCounter
}

// NewMiddleware builds the shared middleware. A nil limiter turns rate limiting off.
func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, verifier TokenVerifier, limiter RateLimitCounter) *Middleware {
	return &Middleware{
		logger:   logger,
		cfg:      cfg,
		verifier: verifier,
		limiter:  limiter,
	}
}
