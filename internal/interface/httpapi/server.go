package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"stock-tracker-api/internal/application/interfaces"
)

type Dependencies struct {
	AuthService      interfaces.AuthService
	WatchlistService interfaces.WatchlistService
	Tokens           interfaces.TokenService
	AuthLimiter      Limiter // optional
	CORSOrigins      []string
}

// NewServer builds the router with every route and middleware attached.
func NewServer(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	requireAuth := BearerAuth(deps.Tokens)
	authHandler := NewAuthHandler(deps.AuthService)
	watchlistHandler := NewWatchlistHandler(deps.WatchlistService)

	api := e.Group("/api")
	api.GET("/health", Health)

	auth := api.Group("/auth")
	if deps.AuthLimiter != nil {
		auth.Use(RateLimit(deps.AuthLimiter))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/google", authHandler.Google)
	auth.GET("/me", authHandler.Me, requireAuth)

	watchlist := api.Group("/watchlist", requireAuth)
	watchlist.GET("", watchlistHandler.List)
	watchlist.POST("/add", watchlistHandler.Add)
	watchlist.PUT("/favorite/:symbol", watchlistHandler.ToggleFavorite)
	watchlist.DELETE("/remove/:symbol", watchlistHandler.Remove)

	return e
}

// Health handles GET /api/health
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
