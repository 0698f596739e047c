package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	apperrors "github.com/SAP-F-2025/trust-service/internal/errors"
	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/SAP-F-2025/trust-service/internal/repositories"
	"github.com/SAP-F-2025/trust-service/internal/services"
	"github.com/SAP-F-2025/trust-service/internal/utils"
)

type PublishingHandler struct {
	BaseHandler
	publishingService services.PublishingService
	validator         *utils.Validator
}

func NewPublishingHandler(
	publishingService services.PublishingService,
	validator *utils.Validator,
	logger utils.Logger,
) *PublishingHandler {
	return &PublishingHandler{
		BaseHandler:       NewBaseHandler(logger),
		publishingService: publishingService,
		validator:         validator,
	}
}

// CreateQuizRequest is the payload for creating a quiz draft.
type CreateQuizRequest struct {
	Title       string                `json:"title" validate:"required,min=1,max=255"`
	Description string                `json:"description" validate:"max=1000"`
	Subject     string                `json:"subject" validate:"required,min=1,max=100"`
	Topic       string                `json:"topic" validate:"max=100"`
	Difficulty  string                `json:"difficulty" validate:"omitempty,difficulty_level"`
	Questions   []models.QuizQuestion `json:"questions" validate:"required,min=1"`
}

// GetPublishingInfo returns the acting user's publishing verdict.
func (h *PublishingHandler) GetPublishingInfo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	info, err := h.publishingService.GetPublishingInfo(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Publishing info",
		Data:    info,
	})
}

// GetNotesPermission reports whether the acting user may upload notes.
func (h *PublishingHandler) GetNotesPermission(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	canUpload, err := h.publishingService.CanUploadNotes(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Notes permission",
		Data:    gin.H{"can_upload_notes": canUpload},
	})
}

// CreateQuiz creates a new quiz draft for the acting user.
func (h *PublishingHandler) CreateQuiz(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: apperrors.ToValidationErrors(err),
		})
		return
	}

	quiz := &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Topic:       req.Topic,
		Difficulty:  models.DifficultyLevel(req.Difficulty),
		Questions:   datatypes.NewJSONSlice(req.Questions),
	}
	if req.Difficulty == "" {
		quiz.Difficulty = models.DifficultyMedium
	}

	h.LogRequest(c, "Creating quiz draft", "subject", req.Subject)

	created, err := h.publishingService.CreateQuiz(c.Request.Context(), userID, quiz)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Quiz draft created",
		Data:    created,
	})
}

// GetQuiz retrieves a quiz by ID.
func (h *PublishingHandler) GetQuiz(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	quiz, err := h.publishingService.GetQuiz(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Quiz",
		Data:    quiz,
	})
}

// ListQuizzes lists quizzes with optional filters.
func (h *PublishingHandler) ListQuizzes(c *gin.Context) {
	filters := repositories.QuizFilters{
		Limit:  20,
		Offset: 0,
	}

	if subject := c.Query("subject"); subject != "" {
		filters.Subject = &subject
	}
	if status := c.Query("status"); status != "" {
		if err := h.validator.Var(status, "quiz_status"); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid status filter",
				Details: "status must be draft, pending, published or rejected",
			})
			return
		}
		qs := models.QuizStatus(status)
		filters.Status = &qs
	}
	if createdBy := c.Query("created_by"); createdBy != "" {
		filters.CreatedBy = &createdBy
	}
	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 && n <= 100 {
			filters.Limit = n
		}
	}
	if offset := c.Query("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n >= 0 {
			filters.Offset = n
		}
	}

	quizzes, total, err := h.publishingService.ListQuizzes(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Quizzes",
		Data: gin.H{
			"quizzes": quizzes,
			"total":   total,
			"limit":   filters.Limit,
			"offset":  filters.Offset,
		},
	})
}

// PublishQuiz runs a publish attempt on a draft quiz.
func (h *PublishingHandler) PublishQuiz(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Publishing quiz", "quiz_id", id)

	result, err := h.publishingService.PublishQuiz(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, services.ErrPublishBlocked) && result != nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Publishing blocked",
				Details: result,
			})
			return
		}
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	message := "Quiz published"
	if !result.Published {
		message = "Quiz did not pass verification"
	}

	c.JSON(status, SuccessResponse{
		Message: message,
		Data:    result,
	})
}

// VerifyQuiz previews the automated quality verdict without publishing.
func (h *PublishingHandler) VerifyQuiz(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	result, err := h.publishingService.VerifyQuiz(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Verification result",
		Data:    result,
	})
}

func (h *PublishingHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "User not found", Details: err.Error()})
	case errors.Is(err, services.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Quiz not found", Details: err.Error()})
	case errors.Is(err, services.ErrQuizAccessDenied):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Access denied to quiz", Details: err.Error()})
	case errors.Is(err, services.ErrQuizNotDraft):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Quiz is not in a publishable state", Details: err.Error()})
	case errors.Is(err, services.ErrPublishBlocked):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Publishing blocked", Details: err.Error()})
	case errors.Is(err, services.ErrVerificationPending):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Message: "Verification is temporarily unavailable; the quiz was not published",
			Details: err.Error(),
		})
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
