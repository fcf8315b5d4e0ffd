package session

import (
	"math"
	"time"

	"github.com/formsense/motion-backend-go/internal/models"
)

// Tracker owns one AnalysisSession: it folds completed reps and frame
// scores into session state and produces the immutable end-of-session
// summary. Reading a summary never mutates the tracker.
type Tracker struct {
	id      string
	profile *models.ExerciseProfile
	sess    *models.AnalysisSession
}

// NewTracker starts tracking a fresh session for the given profile
func NewTracker(id string, profile *models.ExerciseProfile, now time.Time) *Tracker {
	return &Tracker{
		id:      id,
		profile: profile,
		sess:    models.NewAnalysisSession(profile.ID, now),
	}
}

// Session exposes the owned session state to the detection pipeline
func (t *Tracker) Session() *models.AnalysisSession {
	return t.sess
}

// RecordScore accumulates a per-frame form score into the running
// average. Zero scores come from invalid-pose frames and are excluded
// so a blind stretch does not drag the average down.
func (t *Tracker) RecordScore(score float64) {
	if score <= 0 {
		return
	}
	t.sess.ScoreSum += score
	t.sess.ScoreSamples++
}

// ResetForNewSet clears rep count, phase and hold state between sets
// of the same exercise. Session start time and exercise identity are
// kept; this is never used to switch exercises.
func (t *Tracker) ResetForNewSet(now time.Time) {
	t.sess.ResetForNewSet(now)
}

// Calories estimates energy burn from the profile's calorie model:
// per-rep and per-minute rates are mutually exclusive. Rounded to one
// decimal.
func (t *Tracker) Calories(duration time.Duration) float64 {
	var calories float64
	if t.profile.Calories.PerRep > 0 {
		calories = float64(t.sess.RepCount) * t.profile.Calories.PerRep
	} else {
		calories = duration.Minutes() * t.profile.Calories.PerMinute
	}
	return math.Round(calories*10) / 10
}

// Summary produces an immutable snapshot of the session at the given
// instant
func (t *Tracker) Summary(now time.Time) models.SessionSummary {
	duration := now.Sub(t.sess.StartedAt)

	reps := make([]models.RepResult, len(t.sess.Reps))
	copy(reps, t.sess.Reps)

	return models.SessionSummary{
		SessionID:        t.id,
		ExerciseID:       t.sess.ExerciseID,
		Kind:             t.profile.Kind,
		TotalReps:        t.sess.RepCount,
		AverageFormScore: t.sess.AverageScore(),
		DurationSeconds:  duration.Seconds(),
		Calories:         t.Calories(duration),
		Reps:             reps,
		StartedAt:        t.sess.StartedAt,
		EndedAt:          now,
	}
}
