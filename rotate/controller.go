// Package rotate turns pointer drags over a 2D input surface into world-space
// rotations of a 3D target.
//
// Each drag move contributes an incremental rotation whose axis is
// perpendicular to the drag direction and whose angle is proportional to the
// drag distance. Increments are left-multiplied onto the target's current
// orientation, so they always act in the fixed world frame.
package rotate

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Reference tunables.
const (
	DefaultSensitivity   = 0.002 // radians per unit of drag distance
	DefaultMoveThreshold = 0.001 // per-axis jitter gate
	MinSensitivity       = 0.001 // lower end of the recommended range
	MaxSensitivity       = 0.01  // upper end of the recommended range
)

var (
	ErrNilTarget          = errors.New("rotate: nil target")
	ErrInvalidSensitivity = errors.New("rotate: sensitivity must be finite and positive")
	ErrInvalidThreshold   = errors.New("rotate: move threshold must be finite and non-negative")
	ErrDragActive         = errors.New("rotate: sensitivity cannot change during a drag")
)

// Target owns the orientation the controller rotates.
type Target interface {
	Orientation() quat.Number
	SetOrientation(q quat.Number)
}

// State is the drag state of a Controller.
type State uint8

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Outcome classifies what a single Move did.
type Outcome uint8

const (
	StepIgnored Outcome = iota // no active drag, or non-finite input
	StepGated                  // delta under the jitter threshold
	StepApplied                // orientation updated
)

func (o Outcome) String() string {
	switch o {
	case StepIgnored:
		return "ignored"
	case StepGated:
		return "gated"
	case StepApplied:
		return "applied"
	default:
		return "unknown"
	}
}

// Step describes the result of one Move.
type Step struct {
	Point   r2.Vec
	Delta   r2.Vec
	Outcome Outcome

	// Only meaningful when Outcome is StepApplied.
	Axis      r3.Vec
	Angle     float64
	Increment quat.Number

	// Orientation of the target after the step.
	Orientation quat.Number
}

// Applied reports whether the step rotated the target.
func (s Step) Applied() bool {
	return s.Outcome == StepApplied
}

// Options configures a Controller.
type Options struct {
	Sensitivity   float64
	MoveThreshold float64
}

// DefaultOptions returns the reference tunables.
func DefaultOptions() Options {
	return Options{
		Sensitivity:   DefaultSensitivity,
		MoveThreshold: DefaultMoveThreshold,
	}
}

// Validate checks that the options can drive a controller.
func (o Options) Validate() error {
	if !validSensitivity(o.Sensitivity) {
		return ErrInvalidSensitivity
	}
	if math.IsNaN(o.MoveThreshold) || math.IsInf(o.MoveThreshold, 0) || o.MoveThreshold < 0 {
		return ErrInvalidThreshold
	}
	return nil
}

func validSensitivity(s float64) bool {
	return !math.IsNaN(s) && !math.IsInf(s, 0) && s > 0
}

// Controller converts drag notifications into orientation updates on a
// Target. It is not safe for concurrent use; hosts call it from their
// event loop.
type Controller struct {
	target      Target
	sensitivity float64
	threshold   float64

	state State
	last  r2.Vec
}

// NewController creates an idle controller rotating target.
func NewController(target Target, opts Options) (*Controller, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Controller{
		target:      target,
		sensitivity: opts.Sensitivity,
		threshold:   opts.MoveThreshold,
	}, nil
}

// Begin starts a drag at p. No rotation is applied. Calling Begin during a
// drag restarts it from p.
func (c *Controller) Begin(p r2.Vec) {
	if !finite(p) {
		return
	}
	c.last = p
	c.state = Dragging
}

// Move processes the pointer moving to p and returns what happened. The
// last point advances even when the delta is gated.
func (c *Controller) Move(p r2.Vec) Step {
	cur := c.target.Orientation()
	step := Step{Point: p, Orientation: cur, Increment: Identity}
	if c.state != Dragging || !finite(p) {
		return step
	}

	step.Delta = r2.Sub(p, c.last)
	c.last = p

	if Gated(step.Delta, c.threshold) {
		step.Outcome = StepGated
		return step
	}

	step.Axis, step.Angle, step.Increment = Increment(step.Delta, c.sensitivity)
	next := renormalize(Compose(step.Increment, cur))
	c.target.SetOrientation(next)

	step.Orientation = next
	step.Outcome = StepApplied
	return step
}

// End finishes the current drag. Moves are ignored until the next Begin.
func (c *Controller) End() {
	c.state = Idle
}

// State returns whether a drag is active.
func (c *Controller) State() State {
	return c.state
}

// Last returns the most recently processed point.
func (c *Controller) Last() r2.Vec {
	return c.last
}

// Sensitivity returns the radians applied per unit of drag distance.
func (c *Controller) Sensitivity() float64 {
	return c.sensitivity
}

// Threshold returns the per-axis jitter gate.
func (c *Controller) Threshold() float64 {
	return c.threshold
}

// SetSensitivity changes the sensitivity between drags.
func (c *Controller) SetSensitivity(s float64) error {
	if !validSensitivity(s) {
		return ErrInvalidSensitivity
	}
	if c.state == Dragging {
		return ErrDragActive
	}
	c.sensitivity = s
	return nil
}
