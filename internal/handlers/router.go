package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trust-service/internal/services"
	"github.com/SAP-F-2025/trust-service/internal/utils"
)

type HandlerManager struct {
	trustHandler      *TrustHandler
	sourceHandler     *SourceHandler
	publishingHandler *PublishingHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		trustHandler:      NewTrustHandler(serviceManager.Trust(), logger),
		sourceHandler:     NewSourceHandler(serviceManager.Source(), logger),
		publishingHandler: NewPublishingHandler(serviceManager.Publishing(), validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Trust level routes
		trust := v1.Group("/trust")
		{
			trust.GET("/levels", hm.trustHandler.GetTrustLevels)
			trust.POST("/users/:user_id/actions", hm.trustHandler.RecordAction)
		}

		// Content source routes
		sources := v1.Group("/sources")
		{
			sources.POST("/validate", hm.sourceHandler.ValidateSources)
			sources.POST("/youtube/validate", hm.sourceHandler.ValidateYouTubeLink)
			sources.GET("/platforms", hm.sourceHandler.GetApprovedPlatforms)
		}

		// Publishing authorization routes
		publishing := v1.Group("/publishing")
		{
			publishing.GET("/info", hm.publishingHandler.GetPublishingInfo)
			publishing.GET("/notes-permission", hm.publishingHandler.GetNotesPermission)
		}

		// Quiz routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.publishingHandler.CreateQuiz)
			quizzes.GET("", hm.publishingHandler.ListQuizzes)
			quizzes.GET("/:id", hm.publishingHandler.GetQuiz)
			quizzes.POST("/:id/publish", hm.publishingHandler.PublishQuiz)
			quizzes.POST("/:id/verify", hm.publishingHandler.VerifyQuiz)
		}
	}
}

// HealthCheck responds to liveness probes.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "trust-service",
	})
}
