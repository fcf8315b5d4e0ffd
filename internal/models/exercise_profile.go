package models

import (
	"encoding/json"
	"fmt"
)

// ExerciseKind distinguishes rep-counted exercises from timed holds
type ExerciseKind string

const (
	KindReps ExerciseKind = "reps"
	KindHold ExerciseKind = "hold"
)

// PhaseTag names one stage of a movement cycle
type PhaseTag string

const (
	PhaseStart      PhaseTag = "start"
	PhaseDown       PhaseTag = "down"
	PhaseHold       PhaseTag = "hold"
	PhaseUp         PhaseTag = "up"
	PhaseTransition PhaseTag = "transition"

	// PhaseUndetected is the implicit zero-confidence state before
	// any phase has matched
	PhaseUndetected PhaseTag = ""
)

// Severity grades how much a form violation costs
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Penalty returns the score deduction for one violation of this severity
func (s Severity) Penalty() float64 {
	switch s {
	case SeverityCritical:
		return 30
	case SeverityMajor:
		return 15
	case SeverityMinor:
		return 5
	}
	return 0
}

// MeasurementKind is the closed set of measurements a form rule can take.
// It is a typed enum so rule dispatch is an exhaustive switch rather than
// a string lookup with a silent default.
type MeasurementKind int

const (
	MeasureAngle MeasurementKind = iota
	MeasureAlignment
	MeasureSymmetry
	MeasureVelocity
)

var measurementKindNames = map[MeasurementKind]string{
	MeasureAngle:     "angle",
	MeasureAlignment: "alignment",
	MeasureSymmetry:  "symmetry",
	MeasureVelocity:  "velocity",
}

func (k MeasurementKind) String() string {
	if name, ok := measurementKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("measurement(%d)", int(k))
}

// MarshalJSON encodes the kind as its string name so stored profiles
// stay readable
func (k MeasurementKind) MarshalJSON() ([]byte, error) {
	name, ok := measurementKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown measurement kind %d", int(k))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes the string name form
func (k *MeasurementKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, kindName := range measurementKindNames {
		if kindName == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown measurement kind %q", name)
}

// AngleCheck is one joint-angle constraint inside a phase definition.
// Joints holds the angle triple in (end, vertex, end) order.
type AngleCheck struct {
	Joints     [3]JointName `json:"joints"`
	MinDegrees float64      `json:"min_degrees"`
	MaxDegrees float64      `json:"max_degrees"`
	Feedback   string       `json:"feedback"`
}

// PhaseDefinition declares one phase of the movement cycle and the
// angle checks that identify it
type PhaseDefinition struct {
	Tag    PhaseTag     `json:"tag"`
	Checks []AngleCheck `json:"checks"`
}

// Measurement is the measurable quantity behind a form rule
type Measurement struct {
	Kind MeasurementKind `json:"kind"`

	// Points are the landmarks the measurement reads; their meaning
	// depends on the kind (angle triple, alignment triple, left/right
	// pair, or single tracked joint for velocity)
	Points []JointName `json:"points"`

	// Calculation selects a specialized computation for alignment
	// rules (e.g. "knee_collapse"); empty means the generic form
	Calculation string `json:"calculation,omitempty"`

	// Axis applies to alignment and symmetry measurements
	Axis Axis `json:"axis,omitempty"`

	// Min/Max give a valid range, Optimal a scalar target judged
	// against Tolerance; a rule uses one of the two forms
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Optimal   *float64 `json:"optimal,omitempty"`
	Tolerance float64  `json:"tolerance,omitempty"`
}

// FormRule is one declarative movement-quality check
type FormRule struct {
	ID             string      `json:"id"`
	Severity       Severity    `json:"severity"`
	Measurement    Measurement `json:"measurement"`
	ViolationText  string      `json:"violation_text"`
	CorrectionText string      `json:"correction_text"`
}

// RepTrigger configures rep counting: which joint and axis drive the
// movement, and the coordinate thresholds that bound a full repetition
type RepTrigger struct {
	Joint            JointName `json:"joint"`
	Axis             Axis      `json:"axis"`
	StartThreshold   float64   `json:"start_threshold"`
	EndThreshold     float64   `json:"end_threshold"`
	MinDurationMs    int64     `json:"min_duration_ms"`
	RequireFullRange bool      `json:"require_full_range"`
}

// Span is the absolute coordinate distance between the start and end
// thresholds, i.e. the expected full range of motion
func (t RepTrigger) Span() float64 {
	span := t.EndThreshold - t.StartThreshold
	if span < 0 {
		return -span
	}
	return span
}

// CalorieModel estimates energy burn; exactly one of the two rates is
// set per profile
type CalorieModel struct {
	PerRep    float64 `json:"per_rep,omitempty"`
	PerMinute float64 `json:"per_minute,omitempty"`
}

// ExerciseProfile is the static, read-only configuration for one
// exercise. Profiles are built once (or loaded once from the profile
// store) and never mutated by the analysis core.
type ExerciseProfile struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Kind              ExerciseKind      `json:"kind"`
	RequiredLandmarks []JointName       `json:"required_landmarks"`
	Phases            []PhaseDefinition `json:"phases"`
	Rules             []FormRule        `json:"rules"`
	Trigger           RepTrigger        `json:"trigger"`
	Calories          CalorieModel      `json:"calories"`
}

// Validate checks the structural invariants a profile must satisfy
// before it may enter the registry
func (p *ExerciseProfile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile missing id")
	}
	if p.Kind != KindReps && p.Kind != KindHold {
		return fmt.Errorf("profile %s: unknown kind %q", p.ID, p.Kind)
	}
	if len(p.Phases) == 0 {
		return fmt.Errorf("profile %s: no phases defined", p.ID)
	}
	if len(p.RequiredLandmarks) == 0 {
		return fmt.Errorf("profile %s: no required landmarks", p.ID)
	}
	hasPerRep := p.Calories.PerRep > 0
	hasPerMinute := p.Calories.PerMinute > 0
	if hasPerRep == hasPerMinute {
		return fmt.Errorf("profile %s: calorie model must set exactly one of per_rep or per_minute", p.ID)
	}
	for _, phase := range p.Phases {
		for _, check := range phase.Checks {
			if check.MinDegrees > check.MaxDegrees {
				return fmt.Errorf("profile %s: phase %s check has min > max", p.ID, phase.Tag)
			}
		}
	}
	return nil
}

// Phase returns the definition for the given tag, if declared
func (p *ExerciseProfile) Phase(tag PhaseTag) (PhaseDefinition, bool) {
	for _, phase := range p.Phases {
		if phase.Tag == tag {
			return phase, true
		}
	}
	return PhaseDefinition{}, false
}
