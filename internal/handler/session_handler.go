package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formsense/motion-backend-go/internal/models"
	"github.com/formsense/motion-backend-go/internal/profiles"
	"github.com/formsense/motion-backend-go/internal/service"
	"github.com/formsense/motion-backend-go/pkg/response"
)

// SessionHandler handles HTTP requests for analysis sessions
type SessionHandler struct {
	analysisService *service.AnalysisService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(analysisService *service.AnalysisService) *SessionHandler {
	return &SessionHandler{
		analysisService: analysisService,
	}
}

type createSessionRequest struct {
	ExerciseID string `json:"exercise_id" binding:"required"`
}

// frameRequest is the wire form of one pose frame from the
// pose-estimation client
type frameRequest struct {
	TimestampMs int64                                     `json:"timestamp_ms" binding:"required"`
	Landmarks   map[models.JointName]models.LandmarkPoint `json:"landmarks" binding:"required"`
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sessionID, err := h.analysisService.StartSession(req.ExerciseID)
	if err != nil {
		if errors.Is(err, profiles.ErrUnknownExercise) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Created(c, gin.H{
		"session_id":  sessionID,
		"exercise_id": req.ExerciseID,
	})
}

// IngestFrame handles POST /api/v1/sessions/:id/frames
func (h *SessionHandler) IngestFrame(c *gin.Context) {
	var req frameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid frame body: "+err.Error())
		return
	}
	if len(req.Landmarks) == 0 {
		response.BadRequest(c, "Frame contains no landmarks")
		return
	}

	frame := &models.PoseFrame{
		Timestamp: time.UnixMilli(req.TimestampMs),
		Landmarks: req.Landmarks,
	}

	result, err := h.analysisService.ProcessFrame(c.Param("id"), frame)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// ResetSet handles POST /api/v1/sessions/:id/reset
func (h *SessionHandler) ResetSet(c *gin.Context) {
	if err := h.analysisService.ResetSet(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"reset": true})
}

// GetSummary handles GET /api/v1/sessions/:id/summary
func (h *SessionHandler) GetSummary(c *gin.Context) {
	summary, err := h.analysisService.Summary(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, summary)
}

// EndSession handles DELETE /api/v1/sessions/:id and returns the
// final immutable summary
func (h *SessionHandler) EndSession(c *gin.Context) {
	summary, err := h.analysisService.EndSession(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, summary)
}
