package service

import (
	"github.com/formsense/motion-backend-go/internal/models"
	"github.com/formsense/motion-backend-go/internal/profiles"
)

// ProfileService exposes the read-only exercise profile registry
type ProfileService struct {
	registry *profiles.Registry
}

// NewProfileService creates a new profile service
func NewProfileService(registry *profiles.Registry) *ProfileService {
	return &ProfileService{
		registry: registry,
	}
}

// List returns all known exercise profiles
func (s *ProfileService) List() []*models.ExerciseProfile {
	return s.registry.List()
}

// Get returns the profile for an exercise id
func (s *ProfileService) Get(id string) (*models.ExerciseProfile, error) {
	return s.registry.Get(id)
}
