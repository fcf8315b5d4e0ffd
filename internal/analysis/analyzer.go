// Package analysis wires the per-frame pipeline: phase detection and
// form evaluation feed the temporal buffers, and completed reps and
// scores fold into the session tracker. One Analyzer maps to exactly
// one exercise session and one mutator; hosts delivering frames from
// multiple goroutines must serialize calls per instance.
package analysis

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/formsense/motion-backend-go/internal/analysis/form"
	"github.com/formsense/motion-backend-go/internal/analysis/phase"
	"github.com/formsense/motion-backend-go/internal/analysis/session"
	"github.com/formsense/motion-backend-go/internal/analysis/temporal"
	"github.com/formsense/motion-backend-go/internal/biomech"
	"github.com/formsense/motion-backend-go/internal/models"
)

// Analyzer processes one exercise session's pose stream, frame by
// frame, synchronously. No I/O, no internal concurrency; discarding
// the instance is the cancellation mechanism.
type Analyzer struct {
	profile   *models.ExerciseProfile
	detector  *phase.Detector
	evaluator *form.Evaluator
	windows   *temporal.Aggregator
	tracker   *session.Tracker

	lastFrame     *models.PoseFrame
	repositioning bool
}

// NewAnalyzer creates an analyzer for one session of the given
// exercise
func NewAnalyzer(sessionID string, profile *models.ExerciseProfile, log logrus.FieldLogger, now time.Time) *Analyzer {
	return &Analyzer{
		profile:   profile,
		detector:  phase.NewDetector(profile),
		evaluator: form.NewEvaluator(log),
		windows:   temporal.NewAggregator(),
		tracker:   session.NewTracker(sessionID, profile, now),
	}
}

// ProcessFrame runs the full pipeline for one pose frame and returns
// the structured result. Frames missing required landmarks yield a
// reposition result; consecutive reposition frames carry the
// instructional notice only once, when the condition first appears.
func (a *Analyzer) ProcessFrame(frame *models.PoseFrame) models.FrameResult {
	det := a.detector.Process(a.tracker.Session(), frame)

	if det.Reposition {
		res := models.FrameResult{
			Phase:      det.Phase,
			Reposition: true,
			Metrics: models.FormMetrics{
				Violations:    []models.Violation{},
				Consistency:   a.windows.Consistency(),
				Fatigue:       a.windows.Fatigue(),
				RangeOfMotion: a.windows.RangeOfMotion(a.profile),
			},
		}
		if !a.repositioning {
			res.Notices = []string{phase.NoticeReposition}
			a.repositioning = true
		}
		return res
	}
	a.repositioning = false

	if a.lastFrame != nil {
		a.windows.PushVelocity(biomech.JointVelocity(a.lastFrame, frame, a.profile.Trigger.Joint))
	}
	a.windows.PushFrame(frame)

	score, violations := a.evaluator.Evaluate(frame, a.profile, a.windows.Velocities())
	a.windows.PushScore(score)
	a.tracker.RecordScore(score)

	var notices []string
	if det.InsufficientSignal {
		notices = append(notices, phase.NoticeInsufficientSignal)
	}

	a.lastFrame = frame

	return models.FrameResult{
		Phase:        det.Phase,
		Confidence:   det.Confidence,
		FormScore:    score,
		RepCompleted: det.RepCompleted,
		HoldSeconds:  det.HoldSeconds,
		Notices:      notices,
		Metrics: models.FormMetrics{
			Score:         score,
			Violations:    violations,
			AvgVelocity:   a.windows.AvgVelocity(),
			Consistency:   a.windows.Consistency(),
			Fatigue:       a.windows.Fatigue(),
			RangeOfMotion: a.windows.RangeOfMotion(a.profile),
		},
	}
}

// ResetForNewSet clears per-set state between sets of the same
// exercise
func (a *Analyzer) ResetForNewSet(now time.Time) {
	a.tracker.ResetForNewSet(now)
	a.windows.Reset()
	a.lastFrame = nil
	a.repositioning = false
}

// Summary snapshots the session; reading never mutates state
func (a *Analyzer) Summary(now time.Time) models.SessionSummary {
	return a.tracker.Summary(now)
}

// Profile returns the read-only profile this analyzer runs against
func (a *Analyzer) Profile() *models.ExerciseProfile {
	return a.profile
}
