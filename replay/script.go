// Package replay drives a drag surface from recorded strokes.
package replay

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/spin/rotate"
)

// ErrInvalid is returned for scripts that cannot be replayed.
var ErrInvalid = errors.New("invalid script")

// Stroke is one press-drag-release gesture in surface coordinates.
type Stroke struct {
	Points [][2]float64 `yaml:"points"`
}

// Script is an ordered list of strokes.
type Script struct {
	Strokes []Stroke `yaml:"strokes"`
}

// Load reads a script from a YAML file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every stroke has at least one finite point.
func (s *Script) Validate() error {
	if len(s.Strokes) == 0 {
		return fmt.Errorf("%w: no strokes", ErrInvalid)
	}
	for i, st := range s.Strokes {
		if len(st.Points) == 0 {
			return fmt.Errorf("%w: stroke %d has no points", ErrInvalid, i)
		}
		for j, p := range st.Points {
			if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
				return fmt.Errorf("%w: stroke %d point %d is not finite", ErrInvalid, i, j)
			}
		}
	}
	return nil
}

// Moves returns the total number of move events the script emits.
func (s *Script) Moves() int {
	n := 0
	for _, st := range s.Strokes {
		n += len(st.Points) - 1
	}
	return n
}

// Run replays every stroke on the surface: begin at the first point,
// move through the rest, end at the last.
func Run(s *Script, surface *rotate.Surface) {
	for _, st := range s.Strokes {
		st.emit(surface)
	}
}

func (st Stroke) emit(surface *rotate.Surface) {
	pts := make([]r2.Vec, len(st.Points))
	for i, p := range st.Points {
		pts[i] = r2.Vec{X: p[0], Y: p[1]}
	}
	surface.Begin(pts[0])
	for _, p := range pts[1:] {
		surface.Move(p)
	}
	surface.End(pts[len(pts)-1])
}
