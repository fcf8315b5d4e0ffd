package models

import "time"

// Violation is the result of one failed form rule on the current frame
type Violation struct {
	RuleID     string   `json:"rule_id"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Correction string   `json:"correction,omitempty"`
}

// FormMetrics is the per-frame derived metric set
type FormMetrics struct {
	Score         float64     `json:"score"`           // [0,100]
	Violations    []Violation `json:"violations"`
	AvgVelocity   float64     `json:"avg_velocity"`
	Consistency   float64     `json:"consistency"`     // [0,1]
	Fatigue       float64     `json:"fatigue"`         // [0,1]
	RangeOfMotion float64     `json:"range_of_motion"` // percentage [0,100]
}

// RepResult records one completed repetition
type RepResult struct {
	Number          int      `json:"number"`
	FormScore       float64  `json:"form_score"`
	DurationSeconds float64  `json:"duration_seconds"`
	Feedback        []string `json:"feedback,omitempty"`
}

// FrameResult is the structured output for one processed pose frame
type FrameResult struct {
	Phase        PhaseTag    `json:"phase"`
	Confidence   float64     `json:"confidence"` // [0,1]
	FormScore    float64     `json:"form_score"` // [0,100]
	RepCompleted bool        `json:"rep_completed"`
	HoldSeconds  *float64    `json:"hold_seconds,omitempty"`
	Reposition   bool        `json:"reposition"`
	Notices      []string    `json:"notices,omitempty"`
	Metrics      FormMetrics `json:"metrics"`
}

// AnalysisSession is the mutable state of one exercise session. It is
// exclusively owned by a single analyzer instance and only mutated
// through frame-processing calls.
type AnalysisSession struct {
	ExerciseID string
	StartedAt  time.Time

	CurrentPhase PhaseTag
	LastPhase    PhaseTag

	RepCount     int
	Reps         []RepResult
	RepStartedAt time.Time

	// HoldStartedAt is nil when not holding; a zero value would be
	// indistinguishable from "hold just started"
	HoldStartedAt *time.Time

	ScoreSum     float64
	ScoreSamples int
}

// NewAnalysisSession starts a fresh session for the given exercise
func NewAnalysisSession(exerciseID string, now time.Time) *AnalysisSession {
	return &AnalysisSession{
		ExerciseID:   exerciseID,
		StartedAt:    now,
		RepStartedAt: now,
	}
}

// ResetForNewSet clears per-set progress between sets of the same
// exercise. Session start time and exercise identity are preserved.
func (s *AnalysisSession) ResetForNewSet(now time.Time) {
	s.CurrentPhase = PhaseUndetected
	s.LastPhase = PhaseUndetected
	s.RepCount = 0
	s.Reps = nil
	s.RepStartedAt = now
	s.HoldStartedAt = nil
}

// AverageScore is the running mean of accumulated positive frame scores
func (s *AnalysisSession) AverageScore() float64 {
	if s.ScoreSamples == 0 {
		return 0
	}
	return s.ScoreSum / float64(s.ScoreSamples)
}

// SessionSummary is the immutable end-of-session snapshot
type SessionSummary struct {
	SessionID        string       `json:"session_id"`
	ExerciseID       string       `json:"exercise_id"`
	Kind             ExerciseKind `json:"kind"`
	TotalReps        int          `json:"total_reps"`
	AverageFormScore float64      `json:"average_form_score"`
	DurationSeconds  float64      `json:"duration_seconds"`
	Calories         float64      `json:"calories"`
	Reps             []RepResult  `json:"reps"`
	StartedAt        time.Time    `json:"started_at"`
	EndedAt          time.Time    `json:"ended_at"`
}
