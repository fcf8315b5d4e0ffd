package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/formsense/motion-backend-go/internal/profiles"
	"github.com/formsense/motion-backend-go/internal/service"
	"github.com/formsense/motion-backend-go/pkg/response"
)

// ProfileHandler handles HTTP requests for exercise profiles
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// ListProfiles handles GET /api/v1/exercises
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	response.Success(c, h.profileService.List())
}

// GetProfile handles GET /api/v1/exercises/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, profiles.ErrUnknownExercise) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, profile)
}
