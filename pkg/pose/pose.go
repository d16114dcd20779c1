// Package pose provides the rigid-transform value type shared by every
// element of a scene description.
//
// A Pose pairs a position with a roll/pitch/yaw orientation. Poses are
// immutable values: composition returns a new Pose and never mutates its
// operands. Composition is associative with Identity as the unit, but it is
// not commutative.
package pose

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a rigid transform: a position plus a roll/pitch/yaw orientation
// (radians, extrinsic x-y-z convention).
type Pose struct {
	Position mgl64.Vec3
	RPY      mgl64.Vec3
}

// Identity returns the identity transform.
func Identity() Pose {
	return Pose{}
}

// New creates a pose from position and roll/pitch/yaw components.
func New(x, y, z, roll, pitch, yaw float64) Pose {
	return Pose{
		Position: mgl64.Vec3{x, y, z},
		RPY:      mgl64.Vec3{roll, pitch, yaw},
	}
}

// FromQuaternion creates a pose from a position and an orientation
// quaternion. The quaternion is normalized before conversion.
func FromQuaternion(position mgl64.Vec3, q mgl64.Quat) Pose {
	return Pose{
		Position: position,
		RPY:      eulerFromQuat(q.Normalize()),
	}
}

// Quaternion returns the orientation as a unit quaternion.
func (p Pose) Quaternion() mgl64.Quat {
	return mgl64.AnglesToQuat(p.RPY.Z(), p.RPY.Y(), p.RPY.X(), mgl64.ZYX)
}

// IsIdentity reports whether p is exactly the identity transform.
func (p Pose) IsIdentity() bool {
	return p.Position == (mgl64.Vec3{}) && p.RPY == (mgl64.Vec3{})
}

// Compose applies outer as the frame in which inner is expressed and returns
// the combined pose in the outermost frame.
func Compose(outer, inner Pose) Pose {
	q := outer.Quaternion()
	return Pose{
		Position: outer.Position.Add(q.Rotate(inner.Position)),
		RPY:      eulerFromQuat(q.Mul(inner.Quaternion()).Normalize()),
	}
}

// ApproxEqual reports whether two poses are equal within epsilon, component
// by component.
func (p Pose) ApproxEqual(other Pose, epsilon float64) bool {
	return p.Position.ApproxEqualThreshold(other.Position, epsilon) &&
		p.RPY.ApproxEqualThreshold(other.RPY, epsilon)
}

// SDF renders the pose as a nested-format element: <pose>x y z r p y</pose>.
func (p Pose) SDF() string {
	return fmt.Sprintf("<pose>%s %s %s %s %s %s</pose>",
		FormatFloat(p.Position.X()), FormatFloat(p.Position.Y()), FormatFloat(p.Position.Z()),
		FormatFloat(p.RPY.X()), FormatFloat(p.RPY.Y()), FormatFloat(p.RPY.Z()))
}

// URDF renders the pose as a flat-format element:
// <origin xyz="x y z" rpy="r p y"/>.
func (p Pose) URDF() string {
	return fmt.Sprintf(`<origin xyz="%s %s %s" rpy="%s %s %s"/>`,
		FormatFloat(p.Position.X()), FormatFloat(p.Position.Y()), FormatFloat(p.Position.Z()),
		FormatFloat(p.RPY.X()), FormatFloat(p.RPY.Y()), FormatFloat(p.RPY.Z()))
}

// String implements fmt.Stringer using the space-separated 6-tuple form.
func (p Pose) String() string {
	return fmt.Sprintf("%s %s %s %s %s %s",
		FormatFloat(p.Position.X()), FormatFloat(p.Position.Y()), FormatFloat(p.Position.Z()),
		FormatFloat(p.RPY.X()), FormatFloat(p.RPY.Y()), FormatFloat(p.RPY.Z()))
}

// FormatFloat formats a float deterministically with the shortest
// representation that round-trips. All emitted coordinate and parameter
// literals go through this so repeated renders are byte-identical.
func FormatFloat(f float64) string {
	// Normalize negative zero so output is stable across code paths.
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// eulerFromQuat extracts extrinsic x-y-z (roll/pitch/yaw) angles from a unit
// quaternion. The pitch term is clamped to guard against domain errors from
// rounding near the poles.
func eulerFromQuat(q mgl64.Quat) mgl64.Vec3 {
	w, x, y, z := q.W, q.V.X(), q.V.Y(), q.V.Z()

	sinp := 2 * (w*y - z*x)
	if sinp > 1 {
		sinp = 1
	} else if sinp < -1 {
		sinp = -1
	}

	return mgl64.Vec3{
		math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y)),
		math.Asin(sinp),
		math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z)),
	}
}
