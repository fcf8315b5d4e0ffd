package profiles

import (
	"errors"
	"fmt"
	"sort"

	"github.com/formsense/motion-backend-go/internal/models"
)

// ErrUnknownExercise is returned when no profile exists for a
// requested exercise id. This is the only analysis error that
// propagates to the caller; it surfaces at session construction,
// never mid-session.
var ErrUnknownExercise = errors.New("unknown exercise id")

// Registry is an immutable lookup table of exercise profiles, built
// once at startup. The analysis core only ever reads from it.
type Registry struct {
	profiles map[string]*models.ExerciseProfile
}

// NewRegistry builds a registry from the given profiles, validating
// each one
func NewRegistry(list []*models.ExerciseProfile) (*Registry, error) {
	r := &Registry{profiles: make(map[string]*models.ExerciseProfile, len(list))}

	for _, p := range list {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid exercise profile: %w", err)
		}
		if _, exists := r.profiles[p.ID]; exists {
			return nil, fmt.Errorf("duplicate exercise profile %s", p.ID)
		}
		r.profiles[p.ID] = p
	}

	return r, nil
}

// Get returns the profile for the given exercise id
func (r *Registry) Get(id string) (*models.ExerciseProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExercise, id)
	}
	return p, nil
}

// List returns all registered profiles, ordered by id
func (r *Registry) List() []*models.ExerciseProfile {
	out := make([]*models.ExerciseProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
