package rotate

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity is the identity orientation.
var Identity = quat.Number{Real: 1}

// DriftTolerance is the largest deviation of |q| from 1 accepted before
// an orientation is renormalized.
const DriftTolerance = 1e-9

// Gated reports whether a drag delta is too small to rotate the model.
// Rotation proceeds when either component exceeds the threshold, so a
// delta that passes the gate always yields a non-zero axis.
func Gated(delta r2.Vec, threshold float64) bool {
	return math.Abs(delta.X) <= threshold && math.Abs(delta.Y) <= threshold
}

// Axis returns the unit rotation axis for a drag delta: the delta rotated
// 90 degrees in the screen plane, (-dy, dx, 0).
func Axis(delta r2.Vec) r3.Vec {
	return r3.Unit(r3.Vec{X: -delta.Y, Y: delta.X})
}

// Increment converts a drag delta into an axis-angle rotation and its
// unit quaternion. The angle is the drag distance scaled by sensitivity.
// The delta must not be the zero vector.
func Increment(delta r2.Vec, sensitivity float64) (axis r3.Vec, angle float64, q quat.Number) {
	axis = Axis(delta)
	angle = r2.Norm(delta) * sensitivity
	return axis, angle, quat.Number(r3.NewRotation(angle, axis))
}

// Compose applies inc in world space on top of cur: inc * cur.
func Compose(inc, cur quat.Number) quat.Number {
	return quat.Mul(inc, cur)
}

// Normalize scales q to unit length. The zero quaternion maps to Identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return Identity
	}
	return quat.Scale(1/n, q)
}

// renormalize corrects floating point drift once it exceeds DriftTolerance.
func renormalize(q quat.Number) quat.Number {
	if math.Abs(quat.Abs(q)-1) > DriftTolerance {
		return Normalize(q)
	}
	return q
}

// AxisAngle decomposes a unit quaternion into a unit axis and an angle in
// radians in [0, 2pi]. A rotation with no vector part reports the X axis
// and a zero angle.
func AxisAngle(q quat.Number) (r3.Vec, float64) {
	v := r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	s := r3.Norm(v)
	if s < 1e-12 {
		return r3.Vec{X: 1}, 0
	}
	return r3.Scale(1/s, v), 2 * math.Atan2(s, q.Real)
}

// Rotate applies orientation q to point p.
func Rotate(q quat.Number, p r3.Vec) r3.Vec {
	return r3.Rotation(q).Rotate(p)
}

// finite reports whether both coordinates of p are usable numbers.
func finite(p r2.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
