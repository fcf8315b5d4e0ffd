package form

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/formsense/motion-backend-go/internal/biomech"
	"github.com/formsense/motion-backend-go/internal/models"
	"github.com/formsense/motion-backend-go/internal/stats"
)

// Calculation keys for specialized alignment checks
const (
	CalcKneeCollapse = "knee_collapse"

	// kneeCollapseSlack: the horizontal knee-ankle distance may exceed
	// the hip-ankle distance by at most 10% before the knee counts as
	// collapsing inward
	kneeCollapseSlack = 1.10

	// minVelocitySamples: a velocity rule stays silent until this many
	// samples are buffered
	minVelocitySamples = 5
)

// Evaluator runs a profile's declarative form rules against single
// frames and produces severity-weighted violations.
type Evaluator struct {
	log logrus.FieldLogger
}

// NewEvaluator creates a form rule evaluator
func NewEvaluator(log logrus.FieldLogger) *Evaluator {
	return &Evaluator{
		log: log.WithField("component", "form_evaluator"),
	}
}

// Evaluate checks every rule in the profile against the frame.
// Violations stack additively: the score starts at 100 and each
// violation subtracts its severity penalty, clamped to [0,100].
// A rule that cannot be computed is skipped and logged; a single bad
// rule never aborts evaluation of the rest.
func (e *Evaluator) Evaluate(
	frame *models.PoseFrame,
	profile *models.ExerciseProfile,
	velocities []float64,
) (float64, []models.Violation) {
	score := 100.0
	violations := []models.Violation{}

	for _, rule := range profile.Rules {
		violated, err := e.checkRule(frame, rule, velocities)
		if err != nil {
			e.log.WithError(err).
				WithField("rule_id", rule.ID).
				Warn("form rule could not be evaluated, skipping")
			continue
		}
		if !violated {
			continue
		}

		violations = append(violations, models.Violation{
			RuleID:     rule.ID,
			Severity:   rule.Severity,
			Message:    rule.ViolationText,
			Correction: rule.CorrectionText,
		})
		score -= rule.Severity.Penalty()
	}

	return stats.Clamp(score, 0, 100), violations
}

// checkRule dispatches on the measurement kind. The switch covers
// every declared kind; anything else is a configuration error that
// surfaces as a skipped rule.
func (e *Evaluator) checkRule(
	frame *models.PoseFrame,
	rule models.FormRule,
	velocities []float64,
) (bool, error) {
	m := rule.Measurement

	switch m.Kind {
	case models.MeasureAngle:
		return checkAngle(frame, m)
	case models.MeasureAlignment:
		return checkAlignment(frame, m)
	case models.MeasureSymmetry:
		return checkSymmetry(frame, m)
	case models.MeasureVelocity:
		return checkVelocity(m, velocities), nil
	}

	return false, fmt.Errorf("unknown measurement kind %s", m.Kind)
}

func checkAngle(frame *models.PoseFrame, m models.Measurement) (bool, error) {
	points, err := landmarks(frame, m.Points, 3)
	if err != nil {
		return false, err
	}

	angle := biomech.Angle(points[0], points[1], points[2])

	if m.Min != nil && m.Max != nil {
		return angle < *m.Min || angle > *m.Max, nil
	}
	if m.Optimal != nil {
		return math.Abs(angle-*m.Optimal) > m.Tolerance, nil
	}

	return false, fmt.Errorf("angle rule defines neither range nor optimal value")
}

func checkAlignment(frame *models.PoseFrame, m models.Measurement) (bool, error) {
	points, err := landmarks(frame, m.Points, 3)
	if err != nil {
		return false, err
	}

	switch m.Calculation {
	case CalcKneeCollapse:
		// Points are (hip, knee, ankle). The knee drifting inward
		// shows up as a horizontal knee-ankle offset larger than the
		// hip-ankle offset.
		hip, knee, ankle := points[0], points[1], points[2]
		kneeOffset := math.Abs(knee.X - ankle.X)
		hipOffset := math.Abs(hip.X - ankle.X)
		return kneeOffset > hipOffset*kneeCollapseSlack, nil
	case "":
		aligned := biomech.Alignment(points[0], points[1], points[2], m.Axis, m.Tolerance)
		return !aligned, nil
	}

	return false, fmt.Errorf("unknown alignment calculation %q", m.Calculation)
}

func checkSymmetry(frame *models.PoseFrame, m models.Measurement) (bool, error) {
	points, err := landmarks(frame, m.Points, 2)
	if err != nil {
		return false, err
	}

	return biomech.Symmetry(points[0], points[1], m.Axis) > m.Tolerance, nil
}

// checkVelocity compares movement smoothness against the rule's
// tolerance threshold. With fewer than minVelocitySamples buffered
// samples there is no evidence of jerky movement, so no violation is
// raised.
func checkVelocity(m models.Measurement, velocities []float64) bool {
	if len(velocities) < minVelocitySamples {
		return false
	}
	return biomech.Smoothness(velocities) < m.Tolerance
}

// landmarks resolves the named points from the frame, failing when any
// of them is absent
func landmarks(frame *models.PoseFrame, names []models.JointName, want int) ([]models.LandmarkPoint, error) {
	if len(names) < want {
		return nil, fmt.Errorf("measurement needs %d points, has %d", want, len(names))
	}

	points := make([]models.LandmarkPoint, want)
	for i := 0; i < want; i++ {
		p, ok := frame.Landmark(names[i])
		if !ok {
			return nil, fmt.Errorf("landmark %s missing from frame", names[i])
		}
		points[i] = p
	}
	return points, nil
}
