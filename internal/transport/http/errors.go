package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/CongDon1207/Four-Connect/internal/domain"
	"github.com/CongDon1207/Four-Connect/internal/service/bot"
	"github.com/CongDon1207/Four-Connect/internal/service/game"
)

// StatusFor maps an error from the game layer to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrIllegalMove),
		errors.Is(err, bot.ErrInvalidLevel),
		errors.Is(err, game.ErrInvalidMode):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, domain.ErrInsufficientHistory):
		return http.StatusConflict
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. The current state goes along when
// there is one so clients can redraw without another request.
func writeError(c *gin.Context, err error, state *game.State) {
	status := StatusFor(err)
	body := gin.H{"error": err.Error()}
	if status == http.StatusInternalServerError {
		body["error"] = "internal server error"
		_ = c.Error(err)
	}
	if state != nil && state.GameID != "" {
		body["state"] = state
	}
	c.AbortWithStatusJSON(status, body)
}
