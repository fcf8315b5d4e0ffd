package phase_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formsense/motion-backend-go/internal/analysis/phase"
	"github.com/formsense/motion-backend-go/internal/models"
	"github.com/formsense/motion-backend-go/internal/profiles"
)

var sessionStart = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// squatFrame builds a pose with the left knee bent to the given angle
// and all landmarks the squat profile requires fully visible. The
// right side mirrors the left so symmetry checks stay quiet.
func squatFrame(ts time.Time, kneeDeg, visibility float64) *models.PoseFrame {
	knee := models.LandmarkPoint{X: 0.5, Y: 0.55, Visibility: visibility}
	ankle := models.LandmarkPoint{X: 0.5, Y: 0.8, Visibility: visibility}

	// the hip sits at the knee angle away from the knee-to-ankle bearing
	hipBearing := (90 - kneeDeg) * math.Pi / 180
	hip := models.LandmarkPoint{
		X:          knee.X + 0.25*math.Cos(hipBearing),
		Y:          knee.Y + 0.25*math.Sin(hipBearing),
		Visibility: visibility,
	}
	shoulder := models.LandmarkPoint{X: hip.X, Y: hip.Y - 0.3, Visibility: visibility}

	return &models.PoseFrame{
		Timestamp: ts,
		Landmarks: map[models.JointName]models.LandmarkPoint{
			models.LeftShoulder: shoulder, models.RightShoulder: shoulder,
			models.LeftHip: hip, models.RightHip: hip,
			models.LeftKnee: knee, models.RightKnee: knee,
			models.LeftAnkle: ankle, models.RightAnkle: ankle,
		},
	}
}

func squatDetector(t *testing.T) (*phase.Detector, *models.AnalysisSession) {
	t.Helper()
	registry, err := profiles.NewRegistry(profiles.Builtin())
	require.NoError(t, err)
	profile, err := registry.Get("squat")
	require.NoError(t, err)

	return phase.NewDetector(profile), models.NewAnalysisSession("squat", sessionStart)
}

func TestDetector_SquatDownPhase(t *testing.T) {
	detector, sess := squatDetector(t)

	res := detector.Process(sess, squatFrame(sessionStart, 90, 1))

	assert.Equal(t, models.PhaseDown, res.Phase)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, 100.0, res.Score)
	assert.Empty(t, res.FailedChecks)
	assert.False(t, res.Reposition)
}

func TestDetector_RepCountedOnDownToUp(t *testing.T) {
	detector, sess := squatDetector(t)

	r1 := detector.Process(sess, squatFrame(sessionStart, 170, 1))
	r2 := detector.Process(sess, squatFrame(sessionStart.Add(1500*time.Millisecond), 90, 1))
	r3 := detector.Process(sess, squatFrame(sessionStart.Add(3*time.Second), 170, 1))

	assert.False(t, r1.RepCompleted)
	assert.False(t, r2.RepCompleted)
	assert.True(t, r3.RepCompleted)
	assert.Equal(t, 1, sess.RepCount)

	require.Len(t, sess.Reps, 1)
	assert.Equal(t, 1, sess.Reps[0].Number)
	assert.InDelta(t, 3.0, sess.Reps[0].DurationSeconds, 1e-9)
}

func TestDetector_NoDoubleCountFromRepeatedUp(t *testing.T) {
	detector, sess := squatDetector(t)

	detector.Process(sess, squatFrame(sessionStart, 170, 1))
	detector.Process(sess, squatFrame(sessionStart.Add(1500*time.Millisecond), 90, 1))
	detector.Process(sess, squatFrame(sessionStart.Add(3*time.Second), 170, 1))
	res := detector.Process(sess, squatFrame(sessionStart.Add(4*time.Second), 170, 1))

	assert.False(t, res.RepCompleted)
	assert.Equal(t, 1, sess.RepCount)
}

func TestDetector_UpToDownDoesNotCount(t *testing.T) {
	detector, sess := squatDetector(t)

	detector.Process(sess, squatFrame(sessionStart, 170, 1))
	res := detector.Process(sess, squatFrame(sessionStart.Add(2*time.Second), 90, 1))

	assert.False(t, res.RepCompleted)
	assert.Zero(t, sess.RepCount)
}

func TestDetector_MinDurationRejectsJitter(t *testing.T) {
	detector, sess := squatDetector(t)

	detector.Process(sess, squatFrame(sessionStart, 170, 1))
	detector.Process(sess, squatFrame(sessionStart.Add(100*time.Millisecond), 90, 1))
	res := detector.Process(sess, squatFrame(sessionStart.Add(200*time.Millisecond), 170, 1))

	assert.False(t, res.RepCompleted)
	assert.Zero(t, sess.RepCount)
}

func TestDetector_RepositionOnLowVisibility(t *testing.T) {
	detector, sess := squatDetector(t)

	detector.Process(sess, squatFrame(sessionStart, 90, 1))
	res := detector.Process(sess, squatFrame(sessionStart.Add(time.Second), 90, 0.2))

	assert.True(t, res.Reposition)
	assert.Zero(t, res.Confidence)
	assert.Zero(t, res.Score)

	// the blind frame must not corrupt session state
	assert.Equal(t, models.PhaseDown, sess.CurrentPhase)
	assert.Zero(t, sess.RepCount)
}

func TestDetector_HysteresisRetainsPhaseOnNoSignal(t *testing.T) {
	detector, sess := squatDetector(t)

	detector.Process(sess, squatFrame(sessionStart, 90, 1))
	// 130 degrees matches neither the up nor the down band
	res := detector.Process(sess, squatFrame(sessionStart.Add(time.Second), 130, 1))

	assert.Equal(t, models.PhaseDown, res.Phase)
	assert.True(t, res.InsufficientSignal)
	assert.Zero(t, res.Confidence)
	assert.Equal(t, models.PhaseDown, sess.CurrentPhase)
}

// bodyLineFrame builds a pose with the shoulder-hip-ankle angle set,
// for hold detection
func bodyLineFrame(ts time.Time, lineDeg float64) *models.PoseFrame {
	hip := models.LandmarkPoint{X: 0.5, Y: 0.5, Visibility: 1}
	ankle := models.LandmarkPoint{X: 0.5, Y: 0.85, Visibility: 1}

	shoulderBearing := (90 + lineDeg) * math.Pi / 180
	shoulder := models.LandmarkPoint{
		X:          hip.X + 0.35*math.Cos(shoulderBearing),
		Y:          hip.Y + 0.35*math.Sin(shoulderBearing),
		Visibility: 1,
	}

	return &models.PoseFrame{
		Timestamp: ts,
		Landmarks: map[models.JointName]models.LandmarkPoint{
			models.LeftShoulder: shoulder,
			models.LeftHip:      hip,
			models.LeftAnkle:    ankle,
		},
	}
}

func holdProfile() *models.ExerciseProfile {
	return &models.ExerciseProfile{
		ID:                "test_hold",
		Name:              "Test Hold",
		Kind:              models.KindHold,
		RequiredLandmarks: []models.JointName{models.LeftShoulder, models.LeftHip, models.LeftAnkle},
		Phases: []models.PhaseDefinition{
			{
				Tag: models.PhaseHold,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftShoulder, models.LeftHip, models.LeftAnkle},
						MinDegrees: 160, MaxDegrees: 180,
					},
				},
			},
			{
				Tag: models.PhaseUp,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftShoulder, models.LeftHip, models.LeftAnkle},
						MinDegrees: 80, MaxDegrees: 120,
					},
				},
			},
		},
		Calories: models.CalorieModel{PerMinute: 3},
	}
}

func TestDetector_HoldTimer(t *testing.T) {
	detector := phase.NewDetector(holdProfile())
	sess := models.NewAnalysisSession("test_hold", sessionStart)

	// 35 frames at 30 fps of continuous hold
	var last float64 = -1
	for i := 0; i < 35; i++ {
		ts := sessionStart.Add(time.Duration(i) * time.Second / 30)
		res := detector.Process(sess, bodyLineFrame(ts, 172))

		assert.Equal(t, models.PhaseHold, res.Phase)
		require.NotNil(t, res.HoldSeconds)
		assert.Greater(t, *res.HoldSeconds, last)
		last = *res.HoldSeconds
	}
	assert.InDelta(t, 34.0/30.0, last, 1e-6)

	// leaving the hold clears the timer to undefined, not zero
	res := detector.Process(sess, bodyLineFrame(sessionStart.Add(2*time.Second), 100))
	assert.Equal(t, models.PhaseUp, res.Phase)
	assert.Nil(t, res.HoldSeconds)
	assert.Nil(t, sess.HoldStartedAt)
}

func TestDetector_HoldTimerRestartsOnReentry(t *testing.T) {
	detector := phase.NewDetector(holdProfile())
	sess := models.NewAnalysisSession("test_hold", sessionStart)

	detector.Process(sess, bodyLineFrame(sessionStart, 172))
	detector.Process(sess, bodyLineFrame(sessionStart.Add(5*time.Second), 100))

	res := detector.Process(sess, bodyLineFrame(sessionStart.Add(10*time.Second), 172))
	require.NotNil(t, res.HoldSeconds)
	assert.Zero(t, *res.HoldSeconds)
}
