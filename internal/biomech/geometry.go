package biomech

import (
	"math"

	"github.com/formsense/motion-backend-go/internal/models"
)

// Pure geometry over pose landmarks. All functions are deterministic
// and do not gate on landmark visibility; callers are expected to
// pre-filter low-visibility landmarks.

// Angle calculates the interior angle at vertex in degrees, from the
// difference of the two atan2 bearings toward p1 and p2. The result is
// canonical and unsigned: reflected to 360-angle above 180 degrees, so
// point ordering does not matter.
func Angle(p1, vertex, p2 models.LandmarkPoint) float64 {
	rad1 := math.Atan2(p1.Y-vertex.Y, p1.X-vertex.X)
	rad2 := math.Atan2(p2.Y-vertex.Y, p2.X-vertex.X)

	deg := math.Abs((rad2 - rad1) * 180 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}

// Distance calculates the Euclidean 3D distance between two landmarks
func Distance(p1, p2 models.LandmarkPoint) float64 {
	return p1.Vec().Sub(p2.Vec()).Norm()
}

// Midpoint averages the two positions. Visibility propagates
// conservatively: the midpoint is only as trustworthy as the less
// visible of its endpoints.
func Midpoint(p1, p2 models.LandmarkPoint) models.LandmarkPoint {
	mid := p1.Vec().Add(p2.Vec()).Mul(0.5)
	return models.LandmarkPoint{
		X:          mid.X,
		Y:          mid.Y,
		Z:          mid.Z,
		Visibility: math.Min(p1.Visibility, p2.Visibility),
	}
}

// Symmetry calculates the absolute difference of one axis value
// between left/right counterpart landmarks
func Symmetry(left, right models.LandmarkPoint, axis models.Axis) float64 {
	return math.Abs(left.Coord(axis) - right.Coord(axis))
}

// Alignment reports whether p2 lies on the straight line between p1
// and p3 along the given axis, within tolerance. The allowed deviation
// scales with the p1-p3 axis span, so the test is independent of
// subject size and camera distance.
func Alignment(p1, p2, p3 models.LandmarkPoint, axis models.Axis, tolerance float64) bool {
	a1 := p1.Coord(axis)
	a2 := p2.Coord(axis)
	a3 := p3.Coord(axis)

	mid := (a1 + a3) / 2
	deviation := math.Abs(a2 - mid)
	span := math.Abs(a3 - a1)

	return deviation <= tolerance*span
}
