package temporal

import (
	"math"

	"github.com/formsense/motion-backend-go/internal/models"
	"github.com/formsense/motion-backend-go/internal/stats"
)

// Buffer capacities. Sixty frames is roughly two seconds of pose data
// at 30 fps.
const (
	FrameBufferSize    = 60
	VelocityBufferSize = 60
	ScoreBufferSize    = 10
)

// Aggregator maintains the bounded sliding windows behind the derived
// session metrics: consistency, fatigue and range of motion. One
// aggregator belongs to one analyzer instance.
type Aggregator struct {
	frames     *Ring[*models.PoseFrame]
	velocities *Ring[float64]
	scores     *Ring[float64]
}

// NewAggregator creates an aggregator with empty buffers
func NewAggregator() *Aggregator {
	return &Aggregator{
		frames:     NewRing[*models.PoseFrame](FrameBufferSize),
		velocities: NewRing[float64](VelocityBufferSize),
		scores:     NewRing[float64](ScoreBufferSize),
	}
}

// PushFrame buffers a processed pose frame
func (a *Aggregator) PushFrame(f *models.PoseFrame) {
	a.frames.Push(f)
}

// PushVelocity buffers a trigger-joint velocity sample
func (a *Aggregator) PushVelocity(v float64) {
	a.velocities.Push(v)
}

// PushScore buffers a per-frame form score
func (a *Aggregator) PushScore(s float64) {
	a.scores.Push(s)
}

// Frames returns the buffered frames oldest-first
func (a *Aggregator) Frames() []*models.PoseFrame {
	return a.frames.Values()
}

// Velocities returns the buffered velocity samples oldest-first
func (a *Aggregator) Velocities() []float64 {
	return a.velocities.Values()
}

// AvgVelocity is the mean of the buffered velocity samples
func (a *Aggregator) AvgVelocity() float64 {
	return stats.Mean(a.velocities.Values())
}

// Consistency scores how stable recent form scores are, in [0,1].
// With fewer than three samples there is no evidence of inconsistency,
// so it defaults to 1.
func (a *Aggregator) Consistency() float64 {
	scores := a.scores.Values()
	if len(scores) < 3 {
		return 1.0
	}
	return 1 - math.Min(stats.StdDev(scores)/50, 1)
}

// Fatigue measures the normalized drop from the earliest to the most
// recent buffered scores, in [0,1]. Requires at least five samples.
func (a *Aggregator) Fatigue() float64 {
	scores := a.scores.Values()
	if len(scores) < 5 {
		return 0
	}

	earliest := stats.Mean(scores[:5])
	latest := stats.Mean(scores[len(scores)-5:])

	return stats.Clamp((earliest-latest)/30, 0, 1)
}

// RangeOfMotion estimates what share of the profile's expected
// movement span the subject actually covered, as a percentage capped
// at 100. Isometric (hold) exercises are timer-based and always report
// the full range; with fewer than ten buffered frames the estimate is
// a neutral 50.
func (a *Aggregator) RangeOfMotion(profile *models.ExerciseProfile) float64 {
	if profile.Kind == models.KindHold {
		return 100
	}

	frames := a.frames.Values()
	if len(frames) < 10 {
		return 50
	}

	coords := make([]float64, 0, len(frames))
	for _, f := range frames {
		if p, ok := f.Landmark(profile.Trigger.Joint); ok {
			coords = append(coords, p.Coord(profile.Trigger.Axis))
		}
	}
	if len(coords) < 10 {
		return 50
	}

	expected := profile.Trigger.Span()
	if expected == 0 {
		return 100
	}

	observed := stats.Range(coords)
	return math.Min(observed/expected*100, 100)
}

// Reset clears all buffers, used between sets
func (a *Aggregator) Reset() {
	a.frames.Clear()
	a.velocities.Clear()
	a.scores.Clear()
}
