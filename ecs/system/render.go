package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteline/ecs"
	"github.com/milk9111/spriteline/ecs/component"
)

// RenderSystem draws every entity with a Transform and a Sprite, lowest
// RenderLayer first.
type RenderSystem struct {
	CamX, CamY float64
	Zoom       float64
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{Zoom: 1}
}

// Update is a no-op so the renderer can sit in a Scheduler.
func (r *RenderSystem) Update(*ecs.World) {}

type drawItem struct {
	e     ecs.Entity
	layer int
	t     *component.Transform
	s     *component.Sprite
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	var items []drawItem
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Image == nil || s.Hidden {
			return
		}
		layer := 0
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = l.Index
		}
		items = append(items, drawItem{e: e, layer: layer, t: t, s: s})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return items[i].e < items[j].e
	})

	op := &ebiten.DrawImageOptions{}
	for _, it := range items {
		op.GeoM = DrawGeoM(it.t, it.s, r.CamX, r.CamY, r.zoom())
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(it.s.Image, op)
	}
}

func (r *RenderSystem) zoom() float64 {
	if r.Zoom <= 0 {
		return 1
	}
	return r.Zoom
}

// DrawGeoM is the image-to-screen transform for a sprite: move the origin to
// (0,0), scale, rotate, then place it in camera space. Unlike a zero ScaleY,
// a zero ScaleX is honoured so degenerate lines collapse instead of
// snapping back to full width.
func DrawGeoM(t *component.Transform, s *component.Sprite, camX, camY, zoom float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-s.OriginX, -s.OriginY)

	sy := t.ScaleY
	if sy == 0 {
		sy = 1
	}
	g.Scale(t.ScaleX, sy)
	g.Rotate(t.Rotation)
	g.Scale(zoom, zoom)
	g.Translate((t.X-camX)*zoom, (t.Y-camY)*zoom)
	return g
}
