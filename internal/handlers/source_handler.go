package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/SAP-F-2025/trust-service/internal/services"
	"github.com/SAP-F-2025/trust-service/internal/utils"
)

type SourceHandler struct {
	BaseHandler
	sourceService services.SourceService
}

func NewSourceHandler(sourceService services.SourceService, logger utils.Logger) *SourceHandler {
	return &SourceHandler{
		BaseHandler:   NewBaseHandler(logger),
		sourceService: sourceService,
	}
}

// ValidateSourcesRequest carries the content item and its declared
// citations.
type ValidateSourcesRequest struct {
	ContentID string                        `json:"content_id" binding:"required"`
	Metadata  *models.ContentSourceMetadata `json:"metadata" binding:"required"`
}

// ValidateLinkRequest carries a single URL to check.
type ValidateLinkRequest struct {
	URL string `json:"url" binding:"required"`
}

// ValidateSources validates citations and derives the content trust label.
func (h *SourceHandler) ValidateSources(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ValidateSourcesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Validating content sources", "content_id", req.ContentID)

	result, err := h.sourceService.ValidateAndLabel(c.Request.Context(), req.ContentID, userID, req.Metadata)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSourceMetadata) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid source metadata",
				Details: err.Error(),
			})
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to validate sources", err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Source validation result",
		Data:    result,
	})
}

// ValidateYouTubeLink checks a single YouTube URL.
func (h *SourceHandler) ValidateYouTubeLink(c *gin.Context) {
	var req ValidateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	check := h.sourceService.ValidateYouTubeLink(c.Request.Context(), req.URL)

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Link check result",
		Data:    check,
	})
}

// GetApprovedPlatforms returns the online course platform allow-list.
func (h *SourceHandler) GetApprovedPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Approved platforms",
		Data:    gin.H{"platforms": h.sourceService.ApprovedPlatforms()},
	})
}
