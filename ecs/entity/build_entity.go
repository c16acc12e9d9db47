package entity

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteline/atlas"
	"github.com/milk9111/spriteline/ecs"
	"github.com/milk9111/spriteline/ecs/component"
	"github.com/milk9111/spriteline/line"
	"github.com/milk9111/spriteline/prefabs"
)

// SpawnLine validates spec, resolves spec.Frame and, only if that succeeds,
// creates an entity carrying Sprite, Transform, RenderLayer and StretchedLine.
func SpawnLine(w *ecs.World, res line.Resolver, spec prefabs.LineSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("spawn line: world is nil")
	}
	if err := spec.Validate(); err != nil {
		return 0, fmt.Errorf("spawn line: %w", err)
	}

	var e ecs.Entity
	l, err := line.New(spec.From, spec.To, spec.Frame, res, func(f line.Frame) line.Renderable {
		e = ecs.CreateEntity(w)
		img, _ := f.Image.(*ebiten.Image)
		mustAdd(w, e, component.SpriteComponent.Kind(), &component.Sprite{
			Image:   img,
			OriginX: f.Width / 2,
			OriginY: f.Height / 2,
		})
		mustAdd(w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1})
		return NewTransformSink(w, e)
	})
	if err != nil {
		if e.Valid() {
			ecs.DestroyEntity(w, e)
		}
		return 0, fmt.Errorf("spawn line %q: %w", spec.Name, err)
	}

	mustAdd(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Layer})
	mustAdd(w, e, component.StretchedLineComponent.Kind(), &component.StretchedLine{Name: spec.Name, Line: l})

	if spec.Script != "" {
		mustAdd(w, e, component.LineScriptComponent.Kind(), &component.LineScript{Path: spec.Script})
	}
	if p := spec.Pendulum; p != nil {
		mustAdd(w, e, component.PendulumComponent.Kind(), &component.Pendulum{
			AnchorX: spec.From.X,
			AnchorY: spec.From.Y,
			Mass:    p.Mass,
			Radius:  p.Radius,
		})
	}

	return e, nil
}

// BuildScene spawns every line in the scene. On error nothing from the
// scene is left in the world.
func BuildScene(w *ecs.World, res line.Resolver, scene prefabs.SceneSpec) ([]ecs.Entity, error) {
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("build scene %q: %w", scene.Name, err)
	}

	spawned := make([]ecs.Entity, 0, len(scene.Lines))
	for _, spec := range scene.Lines {
		e, err := SpawnLine(w, res, spec)
		if err != nil {
			for _, done := range spawned {
				ecs.DestroyEntity(w, done)
			}
			return nil, fmt.Errorf("build scene %q: %w", scene.Name, err)
		}
		spawned = append(spawned, e)
	}
	return spawned, nil
}

// LoadResolver loads every atlas the scene names into one registry.
func LoadResolver(scene prefabs.SceneSpec) (*atlas.Registry, error) {
	reg := atlas.NewRegistry()
	var errs []error
	for _, path := range scene.Atlases {
		a, err := atlas.Load(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reg.AddAtlas(a)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("load scene %q atlases: %w", scene.Name, err)
	}
	return reg, nil
}

// FindLine returns the entity and segment of the line with the given name.
func FindLine(w *ecs.World, name string) (ecs.Entity, *line.StretchedLine, bool) {
	var (
		found ecs.Entity
		seg   *line.StretchedLine
	)
	ecs.ForEach(w, component.StretchedLineComponent.Kind(), func(e ecs.Entity, sl *component.StretchedLine) {
		if seg == nil && sl.Name == name {
			found, seg = e, sl.Line
		}
	})
	return found, seg, seg != nil
}

func mustAdd[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	if err := ecs.Add(w, e, kind, v); err != nil {
		panic("build entity: " + err.Error())
	}
}
