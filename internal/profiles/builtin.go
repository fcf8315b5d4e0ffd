package profiles

import "github.com/formsense/motion-backend-go/internal/models"

// Builtin returns the stock exercise profiles shipped with the
// server. The profile store seeds these on first start; hosts may add
// their own rows alongside them.
func Builtin() []*models.ExerciseProfile {
	return []*models.ExerciseProfile{
		squat(),
		pushup(),
		lunge(),
		bicepCurl(),
		plank(),
	}
}

func ptr(v float64) *float64 { return &v }

func squat() *models.ExerciseProfile {
	return &models.ExerciseProfile{
		ID:   "squat",
		Name: "Bodyweight Squat",
		Kind: models.KindReps,
		RequiredLandmarks: []models.JointName{
			models.LeftShoulder, models.RightShoulder,
			models.LeftHip, models.RightHip,
			models.LeftKnee, models.RightKnee,
			models.LeftAnkle, models.RightAnkle,
		},
		Phases: []models.PhaseDefinition{
			{
				Tag: models.PhaseUp,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftHip, models.LeftKnee, models.LeftAnkle},
						MinDegrees: 160, MaxDegrees: 180,
						Feedback: "Stand all the way up between reps",
					},
				},
			},
			{
				Tag: models.PhaseDown,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftHip, models.LeftKnee, models.LeftAnkle},
						MinDegrees: 70, MaxDegrees: 110,
						Feedback: "Squat down until your thighs are parallel",
					},
				},
			},
		},
		Rules: []models.FormRule{
			{
				ID:       "squat_torso_lean",
				Severity: models.SeverityMajor,
				Measurement: models.Measurement{
					Kind:   models.MeasureAngle,
					Points: []models.JointName{models.LeftShoulder, models.LeftHip, models.LeftKnee},
					Min:    ptr(45.0), Max: ptr(180.0),
				},
				ViolationText:  "Your torso is leaning too far forward",
				CorrectionText: "Keep your chest up and back straight",
			},
			{
				ID:       "squat_knee_collapse",
				Severity: models.SeverityCritical,
				Measurement: models.Measurement{
					Kind:        models.MeasureAlignment,
					Points:      []models.JointName{models.LeftHip, models.LeftKnee, models.LeftAnkle},
					Calculation: "knee_collapse",
				},
				ViolationText:  "Your knees are caving inward",
				CorrectionText: "Push your knees out over your toes",
			},
			{
				ID:       "squat_shoulder_level",
				Severity: models.SeverityMinor,
				Measurement: models.Measurement{
					Kind:      models.MeasureSymmetry,
					Points:    []models.JointName{models.LeftShoulder, models.RightShoulder},
					Axis:      models.AxisY,
					Tolerance: 0.05,
				},
				ViolationText:  "Your shoulders are uneven",
				CorrectionText: "Keep your shoulders level",
			},
			{
				ID:       "squat_tempo",
				Severity: models.SeverityMinor,
				Measurement: models.Measurement{
					Kind:      models.MeasureVelocity,
					Points:    []models.JointName{models.LeftHip},
					Tolerance: 0.4,
				},
				ViolationText:  "The movement is jerky",
				CorrectionText: "Control the descent and drive up smoothly",
			},
		},
		Trigger: models.RepTrigger{
			Joint:            models.LeftHip,
			Axis:             models.AxisY,
			StartThreshold:   0.45,
			EndThreshold:     0.75,
			MinDurationMs:    1000,
			RequireFullRange: true,
		},
		Calories: models.CalorieModel{PerRep: 0.32},
	}
}

func pushup() *models.ExerciseProfile {
	return &models.ExerciseProfile{
		ID:   "pushup",
		Name: "Push-Up",
		Kind: models.KindReps,
		RequiredLandmarks: []models.JointName{
			models.LeftShoulder, models.RightShoulder,
			models.LeftElbow, models.RightElbow,
			models.LeftWrist, models.RightWrist,
			models.LeftHip, models.RightHip,
			models.LeftAnkle, models.RightAnkle,
		},
		Phases: []models.PhaseDefinition{
			{
				Tag: models.PhaseUp,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftShoulder, models.LeftElbow, models.LeftWrist},
						MinDegrees: 150, MaxDegrees: 180,
						Feedback: "Lock out your arms at the top",
					},
				},
			},
			{
				Tag: models.PhaseDown,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftShoulder, models.LeftElbow, models.LeftWrist},
						MinDegrees: 70, MaxDegrees: 110,
						Feedback: "Lower your chest closer to the floor",
					},
				},
			},
		},
		Rules: []models.FormRule{
			{
				ID:       "pushup_hip_sag",
				Severity: models.SeverityMajor,
				Measurement: models.Measurement{
					Kind:      models.MeasureAlignment,
					Points:    []models.JointName{models.LeftShoulder, models.LeftHip, models.LeftAnkle},
					Axis:      models.AxisY,
					Tolerance: 0.15,
				},
				ViolationText:  "Your hips are sagging",
				CorrectionText: "Squeeze your glutes and keep a straight line",
			},
			{
				ID:       "pushup_elbow_symmetry",
				Severity: models.SeverityMinor,
				Measurement: models.Measurement{
					Kind:      models.MeasureSymmetry,
					Points:    []models.JointName{models.LeftElbow, models.RightElbow},
					Axis:      models.AxisY,
					Tolerance: 0.06,
				},
				ViolationText:  "You are pressing unevenly",
				CorrectionText: "Lower both sides together",
			},
			{
				ID:       "pushup_tempo",
				Severity: models.SeverityMinor,
				Measurement: models.Measurement{
					Kind:      models.MeasureVelocity,
					Points:    []models.JointName{models.LeftShoulder},
					Tolerance: 0.4,
				},
				ViolationText:  "The movement is jerky",
				CorrectionText: "Lower yourself under control",
			},
		},
		Trigger: models.RepTrigger{
			Joint:            models.LeftShoulder,
			Axis:             models.AxisY,
			StartThreshold:   0.35,
			EndThreshold:     0.55,
			MinDurationMs:    800,
			RequireFullRange: true,
		},
		Calories: models.CalorieModel{PerRep: 0.29},
	}
}

func lunge() *models.ExerciseProfile {
	return &models.ExerciseProfile{
		ID:   "lunge",
		Name: "Forward Lunge",
		Kind: models.KindReps,
		RequiredLandmarks: []models.JointName{
			models.LeftShoulder, models.LeftHip, models.RightHip,
			models.LeftKnee, models.RightKnee,
			models.LeftAnkle, models.RightAnkle,
		},
		Phases: []models.PhaseDefinition{
			{
				Tag: models.PhaseUp,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftHip, models.LeftKnee, models.LeftAnkle},
						MinDegrees: 160, MaxDegrees: 180,
						Feedback: "Return to standing between reps",
					},
				},
			},
			{
				Tag: models.PhaseDown,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftHip, models.LeftKnee, models.LeftAnkle},
						MinDegrees: 80, MaxDegrees: 100,
						Feedback: "Bend your front knee to about 90 degrees",
					},
					{
						Joints:     [3]models.JointName{models.RightHip, models.RightKnee, models.RightAnkle},
						MinDegrees: 80, MaxDegrees: 110,
						Feedback: "Drop your back knee toward the floor",
					},
				},
			},
		},
		Rules: []models.FormRule{
			{
				ID:       "lunge_torso_upright",
				Severity: models.SeverityMajor,
				Measurement: models.Measurement{
					Kind:    models.MeasureAngle,
					Points:  []models.JointName{models.LeftShoulder, models.LeftHip, models.LeftKnee},
					Optimal: ptr(170.0), Tolerance: 20,
				},
				ViolationText:  "You are leaning forward in the lunge",
				CorrectionText: "Keep your torso tall and upright",
			},
			{
				ID:       "lunge_knee_track",
				Severity: models.SeverityCritical,
				Measurement: models.Measurement{
					Kind:        models.MeasureAlignment,
					Points:      []models.JointName{models.LeftHip, models.LeftKnee, models.LeftAnkle},
					Calculation: "knee_collapse",
				},
				ViolationText:  "Your front knee is drifting inward",
				CorrectionText: "Track your knee over your foot",
			},
		},
		Trigger: models.RepTrigger{
			Joint:            models.LeftHip,
			Axis:             models.AxisY,
			StartThreshold:   0.5,
			EndThreshold:     0.7,
			MinDurationMs:    1000,
			RequireFullRange: true,
		},
		Calories: models.CalorieModel{PerRep: 0.3},
	}
}

func bicepCurl() *models.ExerciseProfile {
	return &models.ExerciseProfile{
		ID:   "bicep_curl",
		Name: "Bicep Curl",
		Kind: models.KindReps,
		RequiredLandmarks: []models.JointName{
			models.LeftShoulder, models.RightShoulder,
			models.LeftElbow, models.RightElbow,
			models.LeftWrist, models.RightWrist,
			models.LeftHip,
		},
		Phases: []models.PhaseDefinition{
			// "down" is the extended arm, "up" the curled one, so the
			// down-to-up transition counts a completed curl
			{
				Tag: models.PhaseDown,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftShoulder, models.LeftElbow, models.LeftWrist},
						MinDegrees: 150, MaxDegrees: 180,
						Feedback: "Extend your arm fully at the bottom",
					},
				},
			},
			{
				Tag: models.PhaseUp,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftShoulder, models.LeftElbow, models.LeftWrist},
						MinDegrees: 30, MaxDegrees: 60,
						Feedback: "Curl the weight all the way up",
					},
				},
			},
		},
		Rules: []models.FormRule{
			{
				ID:       "curl_elbow_drift",
				Severity: models.SeverityMajor,
				Measurement: models.Measurement{
					Kind:      models.MeasureAlignment,
					Points:    []models.JointName{models.LeftShoulder, models.LeftElbow, models.LeftHip},
					Axis:      models.AxisX,
					Tolerance: 0.2,
				},
				ViolationText:  "Your elbow is drifting away from your side",
				CorrectionText: "Pin your elbow to your ribs",
			},
			{
				ID:       "curl_wrist_symmetry",
				Severity: models.SeverityMinor,
				Measurement: models.Measurement{
					Kind:      models.MeasureSymmetry,
					Points:    []models.JointName{models.LeftWrist, models.RightWrist},
					Axis:      models.AxisY,
					Tolerance: 0.08,
				},
				ViolationText:  "You are curling unevenly",
				CorrectionText: "Raise both arms together",
			},
			{
				ID:       "curl_tempo",
				Severity: models.SeverityMinor,
				Measurement: models.Measurement{
					Kind:      models.MeasureVelocity,
					Points:    []models.JointName{models.LeftWrist},
					Tolerance: 0.4,
				},
				ViolationText:  "You are swinging the weight",
				CorrectionText: "Slow down and squeeze at the top",
			},
		},
		Trigger: models.RepTrigger{
			Joint:            models.LeftWrist,
			Axis:             models.AxisY,
			StartThreshold:   0.7,
			EndThreshold:     0.3,
			MinDurationMs:    600,
			RequireFullRange: false,
		},
		Calories: models.CalorieModel{PerRep: 0.15},
	}
}

func plank() *models.ExerciseProfile {
	return &models.ExerciseProfile{
		ID:   "plank",
		Name: "Plank",
		Kind: models.KindHold,
		RequiredLandmarks: []models.JointName{
			models.LeftShoulder, models.RightShoulder,
			models.LeftHip, models.RightHip,
			models.LeftAnkle, models.RightAnkle,
		},
		Phases: []models.PhaseDefinition{
			{
				Tag: models.PhaseHold,
				Checks: []models.AngleCheck{
					{
						Joints:     [3]models.JointName{models.LeftShoulder, models.LeftHip, models.LeftAnkle},
						MinDegrees: 160, MaxDegrees: 180,
						Feedback: "Keep your body in a straight line",
					},
				},
			},
		},
		Rules: []models.FormRule{
			{
				ID:       "plank_hip_sag",
				Severity: models.SeverityMajor,
				Measurement: models.Measurement{
					Kind:      models.MeasureAlignment,
					Points:    []models.JointName{models.LeftShoulder, models.LeftHip, models.LeftAnkle},
					Axis:      models.AxisY,
					Tolerance: 0.1,
				},
				ViolationText:  "Your hips are dropping",
				CorrectionText: "Brace your core and lift your hips",
			},
			{
				ID:       "plank_body_line",
				Severity: models.SeverityMinor,
				Measurement: models.Measurement{
					Kind:    models.MeasureAngle,
					Points:  []models.JointName{models.LeftShoulder, models.LeftHip, models.LeftAnkle},
					Optimal: ptr(175.0), Tolerance: 12,
				},
				ViolationText:  "Your body line is breaking",
				CorrectionText: "Hold a straight line from shoulders to heels",
			},
		},
		Trigger: models.RepTrigger{
			Joint: models.LeftHip,
			Axis:  models.AxisY,
		},
		Calories: models.CalorieModel{PerMinute: 3.5},
	}
}
