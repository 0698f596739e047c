package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trust-service/internal/services"
	"github.com/SAP-F-2025/trust-service/internal/trust"
	"github.com/SAP-F-2025/trust-service/internal/utils"
)

type TrustHandler struct {
	BaseHandler
	trustService services.TrustService
}

func NewTrustHandler(trustService services.TrustService, logger utils.Logger) *TrustHandler {
	return &TrustHandler{
		BaseHandler:  NewBaseHandler(logger),
		trustService: trustService,
	}
}

// RecordActionRequest carries one community engagement event.
type RecordActionRequest struct {
	Action string `json:"action" binding:"required"`
}

var validActions = map[string]trust.MetricAction{
	string(trust.ActionNoteUploaded):     trust.ActionNoteUploaded,
	string(trust.ActionUpvoteReceived):   trust.ActionUpvoteReceived,
	string(trust.ActionDownvoteReceived): trust.ActionDownvoteReceived,
	string(trust.ActionHelpfulMark):      trust.ActionHelpfulMark,
	string(trust.ActionReportReceived):   trust.ActionReportReceived,
}

// GetTrustLevels returns the trust level bands and the metrics a new
// contributor starts with.
func (h *TrustHandler) GetTrustLevels(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Trust levels",
		Data: gin.H{
			"thresholds":      h.trustService.LevelThresholds(),
			"initial_metrics": h.trustService.GetInitialMetrics(),
		},
	})
}

// RecordAction applies an engagement event to a contributor's metrics.
func (h *TrustHandler) RecordAction(c *gin.Context) {
	userID := ParseStringIDParam(c, "user_id")
	if userID == "" {
		return
	}

	var req RecordActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	action, ok := validActions[req.Action]
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unknown action",
			Details: "action must be one of: note_uploaded, upvote_received, downvote_received, helpful_mark, report_received",
		})
		return
	}

	h.LogRequest(c, "Recording engagement action", "target_user_id", userID, "action", req.Action)

	metrics, err := h.trustService.RecordAction(c.Request.Context(), userID, action)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Action recorded",
		Data:    metrics,
	})
}

func (h *TrustHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User not found",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidRole):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Engagement metrics apply to community contributors only",
			Details: err.Error(),
		})
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to record action", err)
	}
}
