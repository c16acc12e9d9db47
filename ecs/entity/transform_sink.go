package entity

import (
	"github.com/milk9111/spriteline/ecs"
	"github.com/milk9111/spriteline/ecs/component"
	"github.com/milk9111/spriteline/line"
)

// TransformSink is the line.Renderable for an ECS entity: every call
// writes straight into the entity's Transform component.
type TransformSink struct {
	w *ecs.World
	e ecs.Entity
}

// NewTransformSink returns a sink writing to e's Transform in w.
func NewTransformSink(w *ecs.World, e ecs.Entity) *TransformSink {
	return &TransformSink{w: w, e: e}
}

// Entity is the entity whose Transform the sink drives.
func (s *TransformSink) Entity() ecs.Entity {
	return s.e
}

// transform returns e's Transform, adding one if it was removed. It returns
// nil once the entity is dead.
func (s *TransformSink) transform() *component.Transform {
	if !ecs.IsAlive(s.w, s.e) {
		return nil
	}
	if t, ok := ecs.Get(s.w, s.e, component.TransformComponent.Kind()); ok {
		return t
	}
	t := &component.Transform{ScaleX: 1, ScaleY: 1}
	if err := ecs.Add(s.w, s.e, component.TransformComponent.Kind(), t); err != nil {
		return nil
	}
	return t
}

func (s *TransformSink) SetPosition(p line.Point) {
	if t := s.transform(); t != nil {
		t.X = p.X
		t.Y = p.Y
	}
}

func (s *TransformSink) SetRotation(angle float64) {
	if t := s.transform(); t != nil {
		t.Rotation = angle
	}
}

func (s *TransformSink) SetScale(x, y float64) {
	if t := s.transform(); t != nil {
		t.ScaleX = x
		t.ScaleY = y
	}
}
