package main

import (
	"sync"

	"github.com/milk9111/spriteline/ecs"
	"github.com/milk9111/spriteline/ecs/component"
	"github.com/milk9111/spriteline/prefabs"
	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// snapshotScene returns the loaded scene with every line's endpoints
// replaced by where they are now.
func snapshotScene(w *ecs.World, scene prefabs.SceneSpec) prefabs.SceneSpec {
	current := make(map[string]*component.StretchedLine)
	ecs.ForEach(w, component.StretchedLineComponent.Kind(), func(_ ecs.Entity, sl *component.StretchedLine) {
		current[sl.Name] = sl
	})

	out := scene
	out.Lines = make([]prefabs.LineSpec, len(scene.Lines))
	for i, spec := range scene.Lines {
		if sl, ok := current[spec.Name]; ok && sl.Line != nil {
			spec.From = sl.Line.From()
			spec.To = sl.Line.To()
		}
		out.Lines[i] = spec
	}
	return out
}

func (g *Game) copyScene() {
	data, err := prefabs.MarshalScene(snapshotScene(g.world, g.scene))
	if err != nil {
		g.log.Error().Err(err).Msg("marshal scene")
		return
	}

	clipboardOnce.Do(func() { clipboardErr = clipboard.Init() })
	if clipboardErr != nil {
		g.status = "clipboard unavailable"
		g.log.Warn().Err(clipboardErr).Msg("clipboard init")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "scene copied to clipboard"
	g.log.Debug().Int("bytes", len(data)).Msg("scene copied")
}
