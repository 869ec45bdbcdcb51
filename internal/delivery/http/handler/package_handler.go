package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manzafir/manzafir-backend/internal/usecase/catalog"
	"github.com/rs/zerolog"
)

type PackageHandler struct {
	catalogUseCase *catalog.CatalogUseCase
	log            zerolog.Logger
}

func NewPackageHandler(catalogUseCase *catalog.CatalogUseCase, log zerolog.Logger) *PackageHandler {
	return &PackageHandler{
		catalogUseCase: catalogUseCase,
		log:            log,
	}
}

// ListPackages handles GET /api/packages
func (h *PackageHandler) ListPackages(c *gin.Context) {
	packages, err := h.catalogUseCase.ListPackages(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list packages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list packages"})
		return
	}

	c.JSON(http.StatusOK, packages)
}

// CreatePackage handles POST /api/packages
func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req catalog.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	pkg, err := h.catalogUseCase.CreatePackage(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create package")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create package"})
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// InitData handles POST /api/init-data
func (h *PackageHandler) InitData(c *gin.Context) {
	inserted, err := h.catalogUseCase.SeedSampleData(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to seed sample data")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to initialize data"})
		return
	}

	if inserted == 0 {
		c.JSON(http.StatusOK, SuccessResponse{Message: "database already seeded"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: fmt.Sprintf("initialized %d sample packages", inserted)})
}
