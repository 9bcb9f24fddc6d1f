package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CongDon1207/Four-Connect/internal/service/bot"
	"github.com/CongDon1207/Four-Connect/internal/service/game"
	"github.com/CongDon1207/Four-Connect/pkg/auth"
	"github.com/CongDon1207/Four-Connect/pkg/httputil"
)

// Notifier forwards game changes to the game's open sockets.
type Notifier interface {
	PushState(state game.State)
	CloseGame(gameID string)
}

type GameHandler struct {
	Sessions   *game.SessionManager
	Tokens     *auth.TokenIssuer
	Notifier   Notifier
	TokenTTL   time.Duration
	Production bool
}

type createGameRequest struct {
	Mode    game.Mode `json:"mode" binding:"required"`
	Level   int       `json:"level"`
	AIFirst bool      `json:"aiFirst"`
}

type createGameResponse struct {
	GameID string     `json:"gameId"`
	Token  string     `json:"token"`
	State  game.State `json:"state"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type difficultyResponse struct {
	Level     int           `json:"level"`
	Algorithm bot.Algorithm `json:"algorithm"`
	Depth     int           `json:"depth"`
}

// CreateGame starts a session and hands out the token that unlocks it.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.Sessions.Create(c.Request.Context(), game.Settings{
		Mode:    req.Mode,
		Level:   req.Level,
		AIFirst: req.AIFirst,
	})
	if err != nil {
		writeError(c, err, nil)
		return
	}

	token, err := h.Tokens.GenerateGameToken(session.ID)
	if err != nil {
		_ = h.Sessions.Remove(c.Request.Context(), session.ID)
		writeError(c, err, nil)
		return
	}

	httputil.SetGameCookie(c.Writer, token, h.TokenTTL, h.Production)
	c.JSON(http.StatusCreated, createGameResponse{
		GameID: session.ID,
		Token:  token,
		State:  session.State(),
	})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, err := h.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, session.State())
}

func (h *GameHandler) PlayMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	state, err := h.Sessions.Play(c.Request.Context(), c.Param("id"), *req.Column)
	h.respond(c, state, err)
}

func (h *GameHandler) Undo(c *gin.Context) {
	state, err := h.Sessions.Undo(c.Request.Context(), c.Param("id"))
	h.respond(c, state, err)
}

func (h *GameHandler) Reset(c *gin.Context) {
	state, err := h.Sessions.Reset(c.Request.Context(), c.Param("id"))
	h.respond(c, state, err)
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.Sessions.Remove(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, nil)
		return
	}
	if h.Notifier != nil {
		h.Notifier.CloseGame(c.Param("id"))
	}
	httputil.ClearGameCookie(c.Writer)
	c.Status(http.StatusNoContent)
}

// ListDifficulties describes every level a new AI game may use.
func (h *GameHandler) ListDifficulties(c *gin.Context) {
	table := h.Sessions.Difficulties()
	levels := make([]difficultyResponse, 0, len(table))
	for _, level := range table.Levels() {
		cfg := table[level]
		levels = append(levels, difficultyResponse{Level: level, Algorithm: cfg.Algorithm, Depth: cfg.Depth})
	}
	c.JSON(http.StatusOK, levels)
}

// respond pushes a successful change to the sockets before answering.
func (h *GameHandler) respond(c *gin.Context, state game.State, err error) {
	if err != nil {
		writeError(c, err, &state)
		return
	}
	if h.Notifier != nil {
		h.Notifier.PushState(state)
	}
	c.JSON(http.StatusOK, state)
}
