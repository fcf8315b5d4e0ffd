package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/formsense/motion-backend-go/internal/config"
	"github.com/formsense/motion-backend-go/internal/handler"
	"github.com/formsense/motion-backend-go/internal/middleware"
)

// SetupRouter wires the HTTP routes
func SetupRouter(
	cfg *config.Config,
	log logrus.FieldLogger,
	sessionHandler *handler.SessionHandler,
	profileHandler *handler.ProfileHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Motion Analysis API is running",
		})
	})

	api := r.Group("/api/v1")
	if cfg.AuthEnabled {
		api.Use(middleware.Auth(cfg.JWTSecret))
	}

	exercises := api.Group("/exercises")
	{
		exercises.GET("", profileHandler.ListProfiles)
		exercises.GET("/:id", profileHandler.GetProfile)
	}

	sessions := api.Group("/sessions")
	{
		sessions.POST("", sessionHandler.CreateSession)
		// frames arrive at camera rate, so this route gets its own cap
		sessions.POST("/:id/frames",
			middleware.RateLimit(cfg.FrameRateLimit, time.Second),
			sessionHandler.IngestFrame,
		)
		sessions.POST("/:id/reset", sessionHandler.ResetSet)
		sessions.GET("/:id/summary", sessionHandler.GetSummary)
		sessions.DELETE("/:id", sessionHandler.EndSession)
	}

	return r
}
