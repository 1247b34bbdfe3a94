package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stock-tracker-api/internal/application/command"
	"stock-tracker-api/internal/application/interfaces"
	"stock-tracker-api/internal/domain"
)

type WatchlistHandler struct {
	watchlistService interfaces.WatchlistService
}

func NewWatchlistHandler(watchlistService interfaces.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// List handles GET /api/watchlist
func (h *WatchlistHandler) List(c echo.Context) error {
	caller, ok := CurrentUser(c)
	if !ok {
		return domain.Unauthorized("Access token required")
	}

	result, err := h.watchlistService.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Add handles POST /api/watchlist/add
func (h *WatchlistHandler) Add(c echo.Context) error {
	caller, ok := CurrentUser(c)
	if !ok {
		return domain.Unauthorized("Access token required")
	}

	var addCommand command.AddToWatchlistCommand
	if err := bindBody(c, &addCommand); err != nil {
		return err
	}

	result, err := h.watchlistService.Add(c.Request().Context(), caller, &addCommand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

// ToggleFavorite handles PUT /api/watchlist/favorite/:symbol
func (h *WatchlistHandler) ToggleFavorite(c echo.Context) error {
	caller, ok := CurrentUser(c)
	if !ok {
		return domain.Unauthorized("Access token required")
	}

	var favoriteCommand command.ToggleFavoriteCommand
	if err := c.Bind(&favoriteCommand); err != nil {
		// A JSON type mismatch lands here, e.g. {"isFavorite":"yes"}.
		return domain.Validation("isFavorite must be a boolean",
			domain.FieldError{Field: "isFavorite", Message: "isFavorite must be a boolean"})
	}
	favoriteCommand.Symbol = symbolParam(c)

	result, err := h.watchlistService.ToggleFavorite(c.Request().Context(), caller, &favoriteCommand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Remove handles DELETE /api/watchlist/remove/:symbol
func (h *WatchlistHandler) Remove(c echo.Context) error {
	caller, ok := CurrentUser(c)
	if !ok {
		return domain.Unauthorized("Access token required")
	}

	removeCommand := command.RemoveFromWatchlistCommand{Symbol: symbolParam(c)}
	result, err := h.watchlistService.Remove(c.Request().Context(), caller, &removeCommand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
