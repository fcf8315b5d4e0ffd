package temporal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/formsense/motion-backend-go/internal/analysis/temporal"
	"github.com/formsense/motion-backend-go/internal/models"
)

func repsProfile() *models.ExerciseProfile {
	return &models.ExerciseProfile{
		ID:   "test_reps",
		Kind: models.KindReps,
		Trigger: models.RepTrigger{
			Joint:          models.LeftHip,
			Axis:           models.AxisY,
			StartThreshold: 0.4,
			EndThreshold:   0.8,
		},
	}
}

func hipFrame(ts time.Time, y float64) *models.PoseFrame {
	return &models.PoseFrame{
		Timestamp: ts,
		Landmarks: map[models.JointName]models.LandmarkPoint{
			models.LeftHip: {X: 0.5, Y: y, Visibility: 1},
		},
	}
}

func TestConsistency_FewSamplesDefaultsToOne(t *testing.T) {
	a := temporal.NewAggregator()
	a.PushScore(90)
	a.PushScore(40)

	assert.Equal(t, 1.0, a.Consistency())
}

func TestConsistency_IdenticalScores(t *testing.T) {
	a := temporal.NewAggregator()
	for i := 0; i < 5; i++ {
		a.PushScore(85)
	}

	assert.InDelta(t, 1.0, a.Consistency(), 1e-9)
}

func TestConsistency_HighVariance(t *testing.T) {
	a := temporal.NewAggregator()
	for _, s := range []float64{100, 0, 100, 0, 100, 0} {
		a.PushScore(s)
	}

	assert.Less(t, a.Consistency(), 1.0)
}

func TestFatigue_RequiresFiveSamples(t *testing.T) {
	a := temporal.NewAggregator()
	for _, s := range []float64{100, 90, 80, 70} {
		a.PushScore(s)
	}

	assert.Zero(t, a.Fatigue())
}

func TestFatigue_DecliningScores(t *testing.T) {
	a := temporal.NewAggregator()
	// earliest five average 95, latest five average 65
	for _, s := range []float64{95, 95, 95, 95, 95, 65, 65, 65, 65, 65} {
		a.PushScore(s)
	}

	assert.InDelta(t, 1.0, a.Fatigue(), 1e-9)
}

func TestFatigue_ImprovingScoresClampsToZero(t *testing.T) {
	a := temporal.NewAggregator()
	for _, s := range []float64{60, 60, 60, 60, 60, 95, 95, 95, 95, 95} {
		a.PushScore(s)
	}

	assert.Zero(t, a.Fatigue())
}

func TestRangeOfMotion_HoldExercisesAreTimerBased(t *testing.T) {
	profile := &models.ExerciseProfile{ID: "test_hold", Kind: models.KindHold}
	a := temporal.NewAggregator()

	assert.Equal(t, 100.0, a.RangeOfMotion(profile))
}

func TestRangeOfMotion_FewFramesIsNeutral(t *testing.T) {
	a := temporal.NewAggregator()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		a.PushFrame(hipFrame(start.Add(time.Duration(i)*33*time.Millisecond), 0.5))
	}

	assert.Equal(t, 50.0, a.RangeOfMotion(repsProfile()))
}

func TestRangeOfMotion_PartialSpan(t *testing.T) {
	a := temporal.NewAggregator()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// hip oscillates between 0.5 and 0.7: span 0.2 of an expected 0.4
	for i := 0; i < 12; i++ {
		y := 0.5
		if i%2 == 1 {
			y = 0.7
		}
		a.PushFrame(hipFrame(start.Add(time.Duration(i)*33*time.Millisecond), y))
	}

	assert.InDelta(t, 50.0, a.RangeOfMotion(repsProfile()), 1e-9)
}

func TestRangeOfMotion_CappedAtFull(t *testing.T) {
	a := temporal.NewAggregator()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// observed span 0.6 exceeds the configured 0.4
	for i := 0; i < 12; i++ {
		y := 0.3
		if i%2 == 1 {
			y = 0.9
		}
		a.PushFrame(hipFrame(start.Add(time.Duration(i)*33*time.Millisecond), y))
	}

	assert.Equal(t, 100.0, a.RangeOfMotion(repsProfile()))
}
