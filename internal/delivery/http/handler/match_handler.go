package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/internal/usecase/match"
	"github.com/rs/zerolog"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
	log          zerolog.Logger
}

func NewMatchHandler(matchUseCase *match.MatchUseCase, log zerolog.Logger) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
		log:          log,
	}
}

// GetMatches handles GET /api/matches. One whole queue per call; clients
// consume it in order and re-fetch when exhausted.
func (h *MatchHandler) GetMatches(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	queue, err := h.matchUseCase.GetQueue(c.Request.Context(), userID.(string))
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build match queue")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get matches"})
		return
	}

	c.JSON(http.StatusOK, queue)
}

// MatchAction handles POST /api/matches/action
func (h *MatchHandler) MatchAction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	var req match.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	result, err := h.matchUseCase.RecordAction(c.Request.Context(), userID.(string), &req)
	if err != nil {
		if errors.Is(err, domain.ErrCannotMatchSelf) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot act on yourself"})
			return
		}
		h.log.Error().Err(err).Msg("failed to record match action")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to record action"})
		return
	}

	c.JSON(http.StatusOK, result)
}
