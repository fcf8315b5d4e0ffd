package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formsense/motion-backend-go/internal/models"
)

func validProfile() *models.ExerciseProfile {
	return &models.ExerciseProfile{
		ID:                "squat",
		Name:              "Squat",
		Kind:              models.KindReps,
		RequiredLandmarks: []models.JointName{models.LeftHip, models.LeftKnee, models.LeftAnkle},
		Phases: []models.PhaseDefinition{
			{
				Tag: models.PhaseDown,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftHip, models.LeftKnee, models.LeftAnkle},
						MinDegrees: 70,
						MaxDegrees: 110,
						Feedback:   "bend deeper",
					},
				},
			},
		},
		Trigger: models.RepTrigger{
			Joint:          models.LeftHip,
			Axis:           models.AxisY,
			StartThreshold: 0.45,
			EndThreshold:   0.75,
			MinDurationMs:  1000,
		},
		Calories: models.CalorieModel{PerRep: 0.32},
	}
}

func TestExerciseProfile_Validate(t *testing.T) {
	assert.NoError(t, validProfile().Validate())

	noID := validProfile()
	noID.ID = ""
	assert.Error(t, noID.Validate())

	badKind := validProfile()
	badKind.Kind = "interval"
	assert.Error(t, badKind.Validate())

	noPhases := validProfile()
	noPhases.Phases = nil
	assert.Error(t, noPhases.Validate())

	noLandmarks := validProfile()
	noLandmarks.RequiredLandmarks = nil
	assert.Error(t, noLandmarks.Validate())

	bothRates := validProfile()
	bothRates.Calories = models.CalorieModel{PerRep: 0.32, PerMinute: 4}
	assert.Error(t, bothRates.Validate())

	neitherRate := validProfile()
	neitherRate.Calories = models.CalorieModel{}
	assert.Error(t, neitherRate.Validate())

	invertedCheck := validProfile()
	invertedCheck.Phases[0].Checks[0].MinDegrees = 120
	assert.Error(t, invertedCheck.Validate())
}

func TestMeasurementKind_JSONRoundTrip(t *testing.T) {
	kinds := []models.MeasurementKind{
		models.MeasureAngle,
		models.MeasureAlignment,
		models.MeasureSymmetry,
		models.MeasureVelocity,
	}

	for _, kind := range kinds {
		data, err := json.Marshal(kind)
		require.NoError(t, err)

		var decoded models.MeasurementKind
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, kind, decoded, kind.String())
	}
}

func TestMeasurementKind_RejectsUnknownName(t *testing.T) {
	var kind models.MeasurementKind
	err := json.Unmarshal([]byte(`"torque"`), &kind)
	assert.Error(t, err)
}

func TestExerciseProfile_JSONRoundTrip(t *testing.T) {
	optimal := 170.0
	p := validProfile()
	p.Rules = []models.FormRule{
		{
			ID:       "torso_lean",
			Severity: models.SeverityMajor,
			Measurement: models.Measurement{
				Kind:      models.MeasureAngle,
				Points:    []models.JointName{models.LeftShoulder, models.LeftHip, models.LeftKnee},
				Optimal:   &optimal,
				Tolerance: 15,
			},
			ViolationText:  "torso leaning too far forward",
			CorrectionText: "keep your chest up",
		},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded models.ExerciseProfile
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, p.ID, decoded.ID)
	assert.Equal(t, p.Trigger, decoded.Trigger)
	require.Len(t, decoded.Rules, 1)
	assert.Equal(t, models.MeasureAngle, decoded.Rules[0].Measurement.Kind)
	require.NotNil(t, decoded.Rules[0].Measurement.Optimal)
	assert.Equal(t, optimal, *decoded.Rules[0].Measurement.Optimal)
}
