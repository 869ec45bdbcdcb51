package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/manzafir/manzafir-backend/internal/infrastructure/cloudinary"
)

const defaultUploadFolder = "travel"

// ImageUploader stores an image and returns where it landed.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, file io.Reader, folder string) (*cloudinary.UploadResult, error)
}

// UploadResponse is returned for a stored image.
type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type UploadHandler struct {
	uploader ImageUploader
	log      zerolog.Logger
}

// NewUploadHandler creates an upload handler. A nil uploader is allowed; the
// endpoint then answers 503 until storage credentials are configured.
func NewUploadHandler(uploader ImageUploader, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		log:      log,
	}
}

// UploadImage handles POST /api/upload/image
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "image upload is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file is required"})
		return
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file must be an image"})
		return
	}

	folder := c.DefaultPostForm("folder", defaultUploadFolder)

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.uploader.Upload(c.Request.Context(), fileHeader.Filename, file, folder)
	if err != nil {
		h.log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("image upload failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "upload failed"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success:  true,
		URL:      result.URL,
		PublicID: result.PublicID,
	})
}
