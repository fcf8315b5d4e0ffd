package models

import (
	"time"

	"github.com/golang/geo/r3"
)

// JointName identifies a named anatomical landmark
type JointName string

// Landmark names follow the common pose-estimation convention
// (left/right variants of the major joints)
const (
	Nose           JointName = "nose"
	LeftShoulder   JointName = "left_shoulder"
	RightShoulder  JointName = "right_shoulder"
	LeftElbow      JointName = "left_elbow"
	RightElbow     JointName = "right_elbow"
	LeftWrist      JointName = "left_wrist"
	RightWrist     JointName = "right_wrist"
	LeftHip        JointName = "left_hip"
	RightHip       JointName = "right_hip"
	LeftKnee       JointName = "left_knee"
	RightKnee      JointName = "right_knee"
	LeftAnkle      JointName = "left_ankle"
	RightAnkle     JointName = "right_ankle"
	LeftHeel       JointName = "left_heel"
	RightHeel      JointName = "right_heel"
	LeftFootIndex  JointName = "left_foot_index"
	RightFootIndex JointName = "right_foot_index"
)

// Axis identifies one coordinate axis of the camera space
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// LandmarkPoint is a detected landmark position with its visibility
// confidence in [0,1], as reported by the pose-estimation collaborator
type LandmarkPoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Vec returns the landmark position as a 3D vector
func (p LandmarkPoint) Vec() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

// Coord returns the position value along the given axis
func (p LandmarkPoint) Coord(axis Axis) float64 {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	case AxisZ:
		return p.Z
	}
	return 0
}

// PoseFrame is a timestamped snapshot of all tracked landmarks.
// Frames are treated as immutable once constructed; nothing in the
// analysis pipeline writes to a frame after it enters the pipeline.
type PoseFrame struct {
	Timestamp time.Time                   `json:"timestamp"`
	Landmarks map[JointName]LandmarkPoint `json:"landmarks"`
}

// Landmark looks up a landmark by joint name
func (f *PoseFrame) Landmark(name JointName) (LandmarkPoint, bool) {
	p, ok := f.Landmarks[name]
	return p, ok
}

// HasVisible reports whether the named landmark is present with
// visibility at or above the given threshold
func (f *PoseFrame) HasVisible(name JointName, threshold float64) bool {
	p, ok := f.Landmarks[name]
	return ok && p.Visibility >= threshold
}
