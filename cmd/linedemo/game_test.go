package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/spriteline/ecs"
	"github.com/milk9111/spriteline/ecs/entity"
	"github.com/milk9111/spriteline/ecs/system"
	"github.com/milk9111/spriteline/internal/config"
	"github.com/milk9111/spriteline/line"
	"github.com/milk9111/spriteline/prefabs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frames map[string]line.Frame

func (f frames) Resolve(name string) (line.Frame, error) {
	fr, ok := f[name]
	if !ok {
		return line.Frame{}, errors.New("unknown frame")
	}
	return fr, nil
}

var testScene = prefabs.SceneSpec{
	Name: "test",
	Lines: []prefabs.LineSpec{
		{Name: "free", Frame: "rope", From: line.Point{X: 0, Y: 0}, To: line.Point{X: 100, Y: 0}},
		{Name: "scripted", Frame: "rope", From: line.Point{X: 0, Y: 50}, To: line.Point{X: 100, Y: 50}, Script: "orbit.tengo"},
	},
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	w := ecs.NewWorld()
	_, err := entity.BuildScene(w, frames{"rope": {Width: 50, Height: 8}}, testScene)
	require.NoError(t, err)
	return &Game{
		cfg:       config.Config{Scene: "demo.yaml", Width: 640, Height: 480},
		log:       zerolog.Nop(),
		world:     w,
		scene:     testScene,
		scripts:   system.NewScriptSystem(zerolog.Nop()),
		pendulums: system.NewPendulumSystem(system.DefaultGravity),
		render:    system.NewRenderSystem(),
	}
}

func TestGrabNearestEndpoint(t *testing.T) {
	g := newTestGame(t)

	d := g.grab(line.Point{X: 96, Y: 3})
	require.NotNil(t, d)
	assert.Equal(t, endTo, d.end)

	d = g.grab(line.Point{X: 2, Y: -2})
	require.NotNil(t, d)
	assert.Equal(t, endFrom, d.end)

	assert.Nil(t, g.grab(line.Point{X: 50, Y: 0}))
	// scripted lines are not draggable
	assert.Nil(t, g.grab(line.Point{X: 0, Y: 50}))
}

func TestToWorldUsesCamera(t *testing.T) {
	g := newTestGame(t)
	g.render.CamX, g.render.CamY, g.render.Zoom = 10, 20, 2

	assert.Equal(t, line.Point{X: 15, Y: 25}, g.toWorld(10, 10))
}

func TestSnapshotSceneCapturesMovedEndpoints(t *testing.T) {
	g := newTestGame(t)

	_, l, ok := entity.FindLine(g.world, "free")
	require.True(t, ok)
	l.SetEndpoints(line.Point{X: 5, Y: 5}, line.Point{X: 40, Y: 80})

	out := snapshotScene(g.world, g.scene)
	require.Len(t, out.Lines, 2)
	assert.Equal(t, line.Point{X: 5, Y: 5}, out.Lines[0].From)
	assert.Equal(t, line.Point{X: 40, Y: 80}, out.Lines[0].To)
	assert.Equal(t, "orbit.tengo", out.Lines[1].Script)

	// the loaded scene is left untouched
	assert.Equal(t, line.Point{X: 100, Y: 0}, g.scene.Lines[0].To)
}

func TestFailedReloadKeepsWorld(t *testing.T) {
	g := newTestGame(t)
	before := g.world
	g.cfg.Scene = "nope.yaml"

	g.reload("test")

	assert.Same(t, before, g.world)
	assert.True(t, strings.HasPrefix(g.status, "reload failed"), g.status)
	assert.Equal(t, "test", g.scene.Name)
	_, _, ok := entity.FindLine(g.world, "free")
	assert.True(t, ok)
}

func TestReloadSwapsAndClearsOldWorld(t *testing.T) {
	g := newTestGame(t)
	before := g.world

	g.reload("test")

	assert.Equal(t, "reloaded", g.status)
	assert.NotSame(t, before, g.world)
	assert.Empty(t, ecs.Entities(before))
	assert.Equal(t, "demo", g.scene.Name)
	_, _, ok := entity.FindLine(g.world, "tightrope")
	assert.True(t, ok)
}
