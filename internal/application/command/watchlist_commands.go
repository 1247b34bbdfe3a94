package command

type AddToWatchlistCommand struct {
	Symbol string `json:"symbol" validate:"required,max=32"`
	Name   string `json:"name" validate:"required,max=255"`
}

// ToggleFavoriteCommand takes Symbol from the route and IsFavorite from the body.
// A nil IsFavorite means the body did not carry a boolean.
type ToggleFavoriteCommand struct {
	Symbol     string `json:"-"`
	IsFavorite *bool  `json:"isFavorite"`
}

type RemoveFromWatchlistCommand struct {
	Symbol string `json:"-"`
}

type WatchlistCommandResult struct {
	Message string `json:"message"`
}
