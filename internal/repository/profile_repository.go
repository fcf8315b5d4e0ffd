package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/formsense/motion-backend-go/internal/models"
)

// ProfileRepository stores exercise profiles. Profiles are the only
// persisted data; they are loaded once at startup into the read-only
// registry and never written by the analysis core.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

// Seed inserts the given built-in profiles unless rows with those ids
// already exist, so host-customized profiles survive restarts
func (r *ProfileRepository) Seed(profiles []*models.ExerciseProfile) error {
	query := `
		INSERT OR IGNORE INTO exercise_profiles (id, name, kind, profile_json, is_builtin)
		VALUES (?, ?, ?, ?, 1)
	`

	for _, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal profile %s: %w", p.ID, err)
		}
		if _, err := r.db.Exec(query, p.ID, p.Name, string(p.Kind), string(data)); err != nil {
			return fmt.Errorf("failed to seed profile %s: %w", p.ID, err)
		}
	}

	return nil
}

// LoadAll reads every stored profile
func (r *ProfileRepository) LoadAll() ([]*models.ExerciseProfile, error) {
	rows, err := r.db.Query("SELECT profile_json FROM exercise_profiles ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.ExerciseProfile
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan exercise profile: %w", err)
		}

		var p models.ExerciseProfile
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal exercise profile: %w", err)
		}
		profiles = append(profiles, &p)
	}

	return profiles, rows.Err()
}
