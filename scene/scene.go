// Package scene holds the viewer's entities in an ECS world.
package scene

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/spin/components"
	"github.com/pthm-cable/spin/rotate"
)

// Scene owns the ECS world and the component mappers used by the viewer.
type Scene struct {
	world *ecs.World

	entityMapper *ecs.Map3[components.Transform, components.Model, components.Rotatable]
	entityFilter *ecs.Filter2[components.Transform, components.Model]

	transformMap *ecs.Map1[components.Transform]
	rotatableMap *ecs.Map1[components.Rotatable]
}

// New creates an empty scene.
func New() *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:        world,
		entityMapper: ecs.NewMap3[components.Transform, components.Model, components.Rotatable](world),
		entityFilter: ecs.NewFilter2[components.Transform, components.Model](world),
		transformMap: ecs.NewMap1[components.Transform](world),
		rotatableMap: ecs.NewMap1[components.Rotatable](world),
	}
}

// Spawn adds a rotatable model at pos with identity orientation.
func (s *Scene) Spawn(model components.Model, pos r3.Vec) ecs.Entity {
	tf := components.NewTransform(pos)
	rot := components.Rotatable{}
	return s.entityMapper.NewEntity(&tf, &model, &rot)
}

// Remove deletes an entity from the scene.
func (s *Scene) Remove(e ecs.Entity) {
	if s.world.Alive(e) {
		s.world.RemoveEntity(e)
	}
}

// Alive reports whether e still exists.
func (s *Scene) Alive(e ecs.Entity) bool {
	return s.world.Alive(e)
}

// Transform returns the entity's transform.
func (s *Scene) Transform(e ecs.Entity) *components.Transform {
	return s.transformMap.Get(e)
}

// Rotatable returns the entity's rotation activity counters.
func (s *Scene) Rotatable(e ecs.Entity) *components.Rotatable {
	return s.rotatableMap.Get(e)
}

// Reset restores identity orientation on e.
func (s *Scene) Reset(e ecs.Entity) {
	s.Transform(e).Orientation = rotate.Identity
}

// Each calls fn for every drawable entity.
func (s *Scene) Each(fn func(e ecs.Entity, tf *components.Transform, m *components.Model)) {
	query := s.entityFilter.Query()
	for query.Next() {
		tf, m := query.Get()
		fn(query.Entity(), tf, m)
	}
}

// Target adapts an entity's transform to rotate.Target.
func (s *Scene) Target(e ecs.Entity) rotate.Target {
	return &entityTarget{scene: s, entity: e}
}

// RecordStep updates the entity's activity counters after a controller step.
func (s *Scene) RecordStep(e ecs.Entity, step rotate.Step) {
	if !step.Applied() || !s.world.Alive(e) {
		return
	}
	r := s.Rotatable(e)
	r.Steps++
	r.LastRad = step.Angle
}

// RecordDragEnd counts a finished drag on e.
func (s *Scene) RecordDragEnd(e ecs.Entity) {
	if s.world.Alive(e) {
		s.Rotatable(e).Drags++
	}
}

type entityTarget struct {
	scene  *Scene
	entity ecs.Entity
}

func (t *entityTarget) Orientation() quat.Number {
	return t.scene.Transform(t.entity).Orientation
}

func (t *entityTarget) SetOrientation(q quat.Number) {
	t.scene.Transform(t.entity).Orientation = q
}
