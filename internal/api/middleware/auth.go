package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// SessionSource reports the user currently logged in to the tracker.
type SessionSource interface {
	ActiveSession() (domain.User, error)
}

// Auth validates the JWT and injects user_id and role into context. The
// token must belong to the active session, so logging out or logging in as
// someone else revokes every earlier token.
func Auth(jwtSecret string, sessions SessionSource) echo.MiddlewareFunc {
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
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			session, err := sessions.ActiveSession()
			if err != nil || session.ID != sub {
				return echo.NewHTTPError(http.StatusUnauthorized, "session is no longer active")
			}

			c.Set("user_id", sub)
			c.Set("role", role)

			return next(c)
		}
	}
}
