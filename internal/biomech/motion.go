package biomech

import (
	"math"

	"github.com/formsense/motion-backend-go/internal/models"
	"github.com/formsense/motion-backend-go/internal/stats"
)

// JointVelocity calculates how fast the named joint moved between two
// consecutive frames, as distance over elapsed seconds. Returns 0 when
// the joint is missing from either frame or the frames do not advance
// in time.
func JointVelocity(prev, curr *models.PoseFrame, joint models.JointName) float64 {
	p1, ok1 := prev.Landmark(joint)
	p2, ok2 := curr.Landmark(joint)
	if !ok1 || !ok2 {
		return 0
	}

	elapsed := curr.Timestamp.Sub(prev.Timestamp).Seconds()
	if elapsed <= 0 {
		return 0
	}

	return Distance(p1, p2) / elapsed
}

// Smoothness scores a velocity series in [0,1], where 1 is perfectly
// smooth. It is 1 - min(totalVariation / (meanVelocity * n), 1).
// Series shorter than two samples are assumed smooth absent evidence.
func Smoothness(velocities []float64) float64 {
	if len(velocities) < 2 {
		return 1.0
	}

	var totalVariation float64
	for i := 1; i < len(velocities); i++ {
		totalVariation += math.Abs(velocities[i] - velocities[i-1])
	}

	mean := stats.Mean(velocities)
	if mean == 0 {
		return 1.0
	}

	return 1 - math.Min(totalVariation/(mean*float64(len(velocities))), 1)
}
