package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manzafir/manzafir-backend/internal/usecase/profile"
	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	log            zerolog.Logger
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		log:            log,
	}
}

// GetProfile handles GET /api/profile. Also serves as the silent
// re-validation call clients make at startup: a 200 means the session cookie
// is still good.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	resp, err := h.profileUseCase.GetProfile(c.Request.Context(), userID.(string))
	if err != nil {
		h.log.Error().Err(err).Msg("failed to get profile")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProfile handles POST /api/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	updated, err := h.profileUseCase.UpdateProfile(c.Request.Context(), userID.(string), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to update profile")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
