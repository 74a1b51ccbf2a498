package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/orderdispatcher/auth-service/internal/api/metrics"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxEmail    = "email"
	CtxRoles    = "roles"
)

const clockSkew = 30 * time.Second

// Denylist is consulted with the token's jti claim; revoked ids are rejected.
type Denylist interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Options configures token verification.
type Options struct {
	Secret   string
	Issuer   string
	Audience string
	// Denylist is optional; when nil no revocation check is performed.
	Denylist Denylist
}

// Auth validates the bearer token and injects identity claims into context.
func Auth(opts Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims,
				func(token *jwt.Token) (interface{}, error) {
					if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
						return nil, jwt.ErrTokenSignatureInvalid
					}
					return []byte(opts.Secret), nil
				},
				jwt.WithIssuer(opts.Issuer),
				jwt.WithAudience(opts.Audience),
				jwt.WithLeeway(clockSkew),
			)
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if opts.Denylist != nil {
				jti, _ := claims["jti"].(string)
				revoked, err := opts.Denylist.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "token verification unavailable")
				}
				if revoked {
					metrics.TokensDeniedTotal.Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(CtxUserID, claims["sub"])
			c.Set(CtxUsername, claims["unique_name"])
			c.Set(CtxEmail, claims["email"])
			c.Set(CtxRoles, roleClaims(claims))

			return next(c)
		}
	}
}

// roleClaims normalizes the roles claim to []string.
func roleClaims(claims jwt.MapClaims) []string {
	raw, _ := claims["roles"].([]interface{})
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
