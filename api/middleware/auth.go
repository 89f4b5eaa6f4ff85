package middleware

import (
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"context"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing user data in request context
type contextKey string

const ClaimsContextKey contextKey = "claims"

func (mw *Middleware) authenticate(r *http.Request) (*structs.AuthClaims, error) {
	token, err := lib.ExtractBearerToken(r)
	if err != nil {
		return nil, err
	}
	return mw.verifier.VerifyAccessToken(r.Context(), token)
}

// UserAuthMiddleware protects routes to only logged-in users
func (mw *Middleware) UserAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := mw.authenticate(r)
		if err != nil {
			if errors.Is(err, lib.ErrUnauthenticated) {
				gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
				return
			}
			mw.logger.Warn("Rejected access token", gecho.Field("error", err), gecho.Field("path", r.URL.Path))
			gecho.Unauthorized(w, gecho.WithMessage("Invalid or expired access token"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuthMiddleware protects routes to only admin users
// Must be used after UserAuthMiddleware
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		if !ok {
			gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
			return
		}

		if !claims.IsAdmin {
			mw.logger.Warn("Non-admin user attempted to access admin route", gecho.Field("user_id", claims.Sub), gecho.Field("path", r.URL.Path))
			gecho.Forbidden(w, gecho.WithMessage("Admin access required"), gecho.Send())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// OptionalAuthMiddleware attaches claims when a valid bearer token is present.
// Missing or invalid tokens leave the request anonymous.
func (mw *Middleware) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := mw.authenticate(r)
		if err != nil {
			if !errors.Is(err, lib.ErrUnauthenticated) {
				mw.logger.Debug("Ignoring invalid token on optional route", gecho.Field("error", err))
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}

// CallerFromContext returns the authenticated caller, or nil for an anonymous request.
func CallerFromContext(ctx context.Context) *structs.Caller {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return nil
	}
	return claims.Caller()
}
