package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

var errNoTokenID = errors.New("token has no jti")

// TokenChecker reports whether an issued token is still live.
type TokenChecker interface {
	TokenActive(ctx context.Context, tokenID string) (bool, error)
}

// Auth accepts an optional bearer token as the request's identity. Requests
// without an Authorization header pass through to cookie sessions; a header
// that is present but invalid, or names a revoked token, is rejected with 401.
// An accepted token's id is added to the request's client keys so logout can
// revoke it. Must run after ClientKeys.
func Auth(jwtSecret string, tokens TokenChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			id, tokenID, err := parseToken(parts[1], jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			active, err := tokens.TokenActive(c.Request().Context(), tokenID)
			if err != nil {
				return fmt.Errorf("check token: %w", err)
			}
			if !active {
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			}

			keys := KeysFrom(c)
			keys.Token = tokenID
			c.Set(ctxKeys, keys)
			c.Set(ctxView, domain.SessionView{Identity: id})
			return next(c)
		}
	}
}

func parseToken(raw, secret string) (*domain.Identity, string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, "", jwt.ErrTokenInvalidClaims
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return nil, "", errNoTokenID
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	roleName, _ := claims["role"].(string)
	loginTime, _ := claims["login_time"].(string)

	role, err := domain.ParseRole(roleName)
	if err != nil {
		return nil, "", err
	}
	issued, err := time.Parse(time.RFC3339Nano, loginTime)
	if err != nil {
		return nil, "", err
	}

	id := &domain.Identity{Email: email, Name: name, Role: role, IssuedAt: issued}
	if err := id.Validate(); err != nil {
		return nil, "", err
	}
	return id, tokenID, nil
}
