package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manzafir/manzafir-backend/internal/usecase/recommend"
	"github.com/rs/zerolog"
)

type RecommendationHandler struct {
	recommendUseCase *recommend.RecommendUseCase
	log              zerolog.Logger
}

func NewRecommendationHandler(recommendUseCase *recommend.RecommendUseCase, log zerolog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendUseCase: recommendUseCase,
		log:              log,
	}
}

// GetRecommendations handles POST /api/recommendations
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	var req recommend.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	recs, err := h.recommendUseCase.GetRecommendations(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to get recommendations")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get recommendations"})
		return
	}

	c.JSON(http.StatusOK, recs)
}
