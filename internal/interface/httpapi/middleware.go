package httpapi

import (
	"log"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"stock-tracker-api/internal/application/interfaces"
	"stock-tracker-api/internal/domain"
	"stock-tracker-api/internal/domain/entities"
)

const authUserKey = "auth_user"

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// BearerAuth verifies the Authorization header and stores the caller in the context.
// A missing token is 401; a token that fails verification is 403.
func BearerAuth(tokens interfaces.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, found := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return domain.Unauthorized("Access token required")
			}

			user, err := tokens.ParseToken(token)
			if err != nil {
				return domain.Forbidden("Invalid or expired token")
			}

			c.Set(authUserKey, *user)
			return next(c)
		}
	}
}

// CurrentUser returns the caller set by BearerAuth.
func CurrentUser(c echo.Context) (entities.AuthUser, bool) {
	user, ok := c.Get(authUserKey).(entities.AuthUser)
	return user, ok
}

func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return domain.RateLimited("Too many requests, please try again later")
			}
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[http] %s %s %d %s ip=%s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RemoteIP, v.RequestID)
			return nil
		},
	})
}
