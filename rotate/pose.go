package rotate

import "gonum.org/v1/gonum/num/quat"

// Pose is a standalone Target. The zero Pose holds the identity orientation.
type Pose struct {
	q quat.Number
}

// NewPose returns a pose holding q, normalized.
func NewPose(q quat.Number) *Pose {
	return &Pose{q: Normalize(q)}
}

// Orientation implements Target.
func (p *Pose) Orientation() quat.Number {
	if p.q == (quat.Number{}) {
		return Identity
	}
	return p.q
}

// SetOrientation implements Target.
func (p *Pose) SetOrientation(q quat.Number) {
	p.q = q
}
