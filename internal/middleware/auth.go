package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/segyhp/invoice-marketplace/internal/config"
	"github.com/segyhp/invoice-marketplace/internal/domain"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
	"github.com/segyhp/invoice-marketplace/pkg/logger"
	"github.com/segyhp/invoice-marketplace/pkg/response"
)

type callerKey struct{}

// Claims carries the caller identity. The user ID travels in the subject.
type Claims struct {
	Capabilities []domain.Capability `json:"capabilities"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for userID valid for ttl
func GenerateToken(userID uuid.UUID, capabilities []domain.Capability, ttl time.Duration, cfg *config.AuthConfig) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := &Claims{
		Capabilities: capabilities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Auth validates the bearer token and stores the caller in the request context
func Auth(cfg *config.AuthConfig) func(http.Handler) http.Handler {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims := &Claims{}
			token, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				response.Unauthorized(w, "Invalid token subject")
				return
			}

			caller := domain.Caller{ID: userID, Capabilities: claims.Capabilities}
			ctx := WithCaller(r.Context(), caller)
			ctx = context.WithValue(ctx, logger.UserIDKey, userID.String())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCaller returns a copy of ctx carrying caller
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the authenticated caller or an unauthenticated error
func CallerFromContext(ctx context.Context) (domain.Caller, error) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	if !ok || caller.ID == uuid.Nil {
		return domain.Caller{}, customError.WrapUnauthenticated("no authenticated caller")
	}
	return caller, nil
}
