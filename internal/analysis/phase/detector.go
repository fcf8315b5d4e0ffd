package phase

import (
	"time"

	"github.com/formsense/motion-backend-go/internal/biomech"
	"github.com/formsense/motion-backend-go/internal/models"
)

const (
	// DefaultVisibilityThreshold is the minimum landmark visibility
	// below which a required joint counts as not seen
	DefaultVisibilityThreshold = 0.5

	// checkPenalty is the flat per-failing-check deduction of the
	// coarse phase score. This is intentionally coarser than the
	// severity-weighted form rule scoring.
	checkPenalty = 15.0
)

// Notices surfaced alongside detection results
const (
	NoticeReposition         = "Move back into the camera frame so your whole body is visible"
	NoticeInsufficientSignal = "Movement phase unclear, keep going"
)

// Result is the outcome of running the detector over one frame
type Result struct {
	Phase              models.PhaseTag
	Confidence         float64
	Score              float64
	FailedChecks       []string
	RepCompleted       bool
	HoldSeconds        *float64
	Reposition         bool
	InsufficientSignal bool
}

// Detector is the movement-phase state machine. Every frame it ranks
// the profile's phases by the share of matched angle checks, selects
// the winner, and counts repetitions on the down-to-up transition.
// The detector mutates the session it is given; it holds no state of
// its own beyond the profile.
type Detector struct {
	profile             *models.ExerciseProfile
	visibilityThreshold float64
}

// NewDetector creates a detector bound to one exercise profile
func NewDetector(profile *models.ExerciseProfile) *Detector {
	return &Detector{
		profile:             profile,
		visibilityThreshold: DefaultVisibilityThreshold,
	}
}

// Process runs phase detection and rep counting for one frame.
// If any required landmark is below the visibility threshold, the
// frame is treated as blind: detection is skipped entirely and a
// zero-confidence, zero-score reposition result is returned without
// touching the session.
func (d *Detector) Process(sess *models.AnalysisSession, frame *models.PoseFrame) Result {
	for _, joint := range d.profile.RequiredLandmarks {
		if !frame.HasVisible(joint, d.visibilityThreshold) {
			return Result{
				Phase:      sess.CurrentPhase,
				Reposition: true,
			}
		}
	}

	selected, confidence := d.rankPhases(frame)

	if confidence == 0 {
		// Nothing matched. Retain the previous phase rather than
		// flapping on a noisy frame.
		res := Result{
			Phase:              sess.CurrentPhase,
			InsufficientSignal: true,
		}
		if def, ok := d.profile.Phase(sess.CurrentPhase); ok {
			res.Score, res.FailedChecks = d.scorePhase(def, frame)
		}
		res.HoldSeconds = d.holdSeconds(sess, frame.Timestamp)
		return res
	}

	def, _ := d.profile.Phase(selected)
	score, failed := d.scorePhase(def, frame)

	res := Result{
		Phase:        selected,
		Confidence:   confidence,
		Score:        score,
		FailedChecks: failed,
	}

	previous := sess.CurrentPhase
	if selected != previous {
		sess.LastPhase = previous
		sess.CurrentPhase = selected
	}

	// A rep increments exactly once, on the down-to-up transition. A
	// fresh pass through "down" is required before "up" counts again.
	if d.profile.Kind == models.KindReps &&
		previous == models.PhaseDown && selected == models.PhaseUp {
		res.RepCompleted = d.completeRep(sess, frame.Timestamp, score, failed)
	}

	// Hold timing: the timer starts the instant "hold" is entered and
	// becomes undefined again (not zero) on leaving it.
	if selected == models.PhaseHold {
		if sess.HoldStartedAt == nil {
			ts := frame.Timestamp
			sess.HoldStartedAt = &ts
		}
	} else if sess.HoldStartedAt != nil {
		sess.HoldStartedAt = nil
	}
	res.HoldSeconds = d.holdSeconds(sess, frame.Timestamp)

	return res
}

// rankPhases computes each phase's confidence as the fraction of its
// angle checks that match, and returns the winner. Phases without
// checks are skipped; ties keep the first-declared phase.
func (d *Detector) rankPhases(frame *models.PoseFrame) (models.PhaseTag, float64) {
	best := models.PhaseUndetected
	bestConfidence := 0.0

	for _, phase := range d.profile.Phases {
		if len(phase.Checks) == 0 {
			continue
		}

		matched := 0
		for _, check := range phase.Checks {
			if checkMatches(check, frame) {
				matched++
			}
		}

		confidence := float64(matched) / float64(len(phase.Checks))
		if confidence > bestConfidence {
			bestConfidence = confidence
			best = phase.Tag
		}
	}

	return best, bestConfidence
}

// scorePhase applies the coarse scoring: start at 100, subtract a flat
// penalty per failing check, floor at 0
func (d *Detector) scorePhase(def models.PhaseDefinition, frame *models.PoseFrame) (float64, []string) {
	score := 100.0
	var failed []string

	for _, check := range def.Checks {
		if checkMatches(check, frame) {
			continue
		}
		score -= checkPenalty
		if check.Feedback != "" {
			failed = append(failed, check.Feedback)
		}
	}

	if score < 0 {
		score = 0
	}
	return score, failed
}

// completeRep records the finished repetition and restarts the rep
// timer. Reps faster than the trigger's minimum duration are rejected
// as jitter.
func (d *Detector) completeRep(sess *models.AnalysisSession, now time.Time, score float64, feedback []string) bool {
	elapsed := now.Sub(sess.RepStartedAt)
	if minDur := time.Duration(d.profile.Trigger.MinDurationMs) * time.Millisecond; elapsed < minDur {
		return false
	}

	sess.RepCount++
	sess.Reps = append(sess.Reps, models.RepResult{
		Number:          sess.RepCount,
		FormScore:       score,
		DurationSeconds: elapsed.Seconds(),
		Feedback:        feedback,
	})
	sess.RepStartedAt = now
	return true
}

func (d *Detector) holdSeconds(sess *models.AnalysisSession, now time.Time) *float64 {
	if sess.HoldStartedAt == nil {
		return nil
	}
	secs := now.Sub(*sess.HoldStartedAt).Seconds()
	return &secs
}

func checkMatches(check models.AngleCheck, frame *models.PoseFrame) bool {
	p1, ok1 := frame.Landmark(check.Joints[0])
	vertex, ok2 := frame.Landmark(check.Joints[1])
	p2, ok3 := frame.Landmark(check.Joints[2])
	if !ok1 || !ok2 || !ok3 {
		return false
	}

	angle := biomech.Angle(p1, vertex, p2)
	return angle >= check.MinDegrees && angle <= check.MaxDegrees
}
