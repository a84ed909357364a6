package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/reactiverse/core/internal/adapters/http"
	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/ports"
)

// TokenValidator turns a bearer token into session claims
type TokenValidator interface {
	Validate(token string) (*ports.Claims, error)
}

// authMiddleware validates JWT tokens
func (s *Server) authMiddleware(tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				s.logger.LogSecurityEvent("invalid_token", "", c.RealIP(), map[string]interface{}{
					"error": err.Error(),
				})
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(httpHandlers.ContextKeySubject, claims.Subject)
			c.Set(httpHandlers.ContextKeyRole, claims.Role)

			return next(c)
		}
	}
}

// requireRole checks if the session has one of the given roles
func (s *Server) requireRole(roles ...entities.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(httpHandlers.ContextKeyRole).(entities.Role)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Role information not found")
			}

			for _, required := range roles {
				if role == required {
					return next(c)
				}
			}

			subject, _ := c.Get(httpHandlers.ContextKeySubject).(string)
			s.logger.LogSecurityEvent("insufficient_permissions",
				subject,
				c.RealIP(),
				map[string]interface{}{
					"required_roles": roles,
					"role":           role,
					"endpoint":       c.Request().URL.Path,
				})

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}
