package main

import (
	"fmt"
	"image/color"
	"math"

	uiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spriteline/ecs"
	"github.com/milk9111/spriteline/ecs/component"
	"github.com/milk9111/spriteline/ecs/entity"
	"github.com/milk9111/spriteline/ecs/system"
	"github.com/milk9111/spriteline/internal/config"
	"github.com/milk9111/spriteline/line"
	"github.com/milk9111/spriteline/prefabs"
	"github.com/rs/zerolog"
)

const grabRadius = 14.0

var background = color.RGBA{R: 24, G: 26, B: 33, A: 255}

type end int

const (
	endFrom end = iota
	endTo
)

type drag struct {
	e   ecs.Entity
	end end
}

type Game struct {
	cfg config.Config
	log zerolog.Logger

	world     *ecs.World
	scene     prefabs.SceneSpec
	scheduler *ecs.Scheduler
	scripts   *system.ScriptSystem
	pendulums *system.PendulumSystem
	render    *system.RenderSystem
	watcher   *prefabs.Watcher
	hud       *hud

	dragging *drag
	status   string
}

func NewGame(cfg config.Config, log zerolog.Logger) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		log:       log,
		scripts:   system.NewScriptSystem(log.With().Str("system", "script").Logger()),
		pendulums: system.NewPendulumSystem(cfg.Gravity),
		render:    system.NewRenderSystem(),
	}
	g.hud = newHUD(hudActions{
		Reload:      func() { g.reload("button") },
		ToggleDebug: g.toggleDebug,
		Copy:        g.copyScene,
	})
	g.scheduler = ecs.NewScheduler(g.scripts, g.pendulums, g.render)

	if err := g.load(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher(0, cfg.WatchDirs...)
		if err != nil {
			g.log.Warn().Err(err).Strs("dirs", cfg.WatchDirs).Msg("hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load builds a fresh world from the scene file and swaps it in only when
// every line resolved. The previous world is cleared after the swap.
func (g *Game) load() error {
	scene, err := prefabs.LoadScene(g.cfg.Scene)
	if err != nil {
		return err
	}
	res, err := entity.LoadResolver(scene)
	if err != nil {
		return err
	}
	world := ecs.NewWorld()
	ents, err := entity.BuildScene(world, res, scene)
	if err != nil {
		return err
	}

	g.pendulums.Reset()
	g.scripts.Reset()
	if g.world != nil {
		ecs.Clear(g.world)
	}
	g.world = world
	g.scene = scene
	g.dragging = nil
	ev := g.log.Info().Str("scene", scene.Name).Int("lines", len(ents))
	if mod, ok := prefabs.ModTime(g.cfg.Scene); ok {
		ev = ev.Time("modified", mod)
	}
	ev.Msg("scene loaded")
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn().Err(err).Msg("close watcher")
		}
	}
}

func (g *Game) Update() error {
	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload("key")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.toggleDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyScene()
	}

	g.hud.update(g.status)
	g.updateDrag()
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn().Err(err).Msg("watcher")
		default:
			return
		}
	}
}

func (g *Game) reload(reason string) {
	if err := g.load(); err != nil {
		g.status = "reload failed: " + err.Error()
		g.log.Error().Err(err).Str("trigger", reason).Msg("reload scene")
		return
	}
	g.status = "reloaded"
}

func (g *Game) toggleDebug() {
	g.cfg.Debug = !g.cfg.Debug
}

func (g *Game) updateDrag() {
	cx, cy := ebiten.CursorPosition()
	cursor := g.toWorld(float64(cx), float64(cy))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !uiinput.UIHovered {
		g.dragging = g.grab(cursor)
	}
	if g.dragging != nil && !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = nil
	}
	if g.dragging == nil {
		return
	}

	sl, ok := ecs.Get(g.world, g.dragging.e, component.StretchedLineComponent.Kind())
	if !ok {
		g.dragging = nil
		return
	}
	if g.dragging.end == endFrom {
		sl.Line.SetFrom(cursor)
	} else {
		sl.Line.SetTo(cursor)
	}
}

// grab picks the closest endpoint of a line the user can move. Scripted and
// pendulum lines are skipped since their systems overwrite them each tick.
func (g *Game) grab(p line.Point) *drag {
	var (
		best     *drag
		bestDist = grabRadius
	)
	ecs.ForEach(g.world, component.StretchedLineComponent.Kind(), func(e ecs.Entity, sl *component.StretchedLine) {
		if ecs.Has(g.world, e, component.LineScriptComponent.Kind()) || ecs.Has(g.world, e, component.PendulumComponent.Kind()) {
			return
		}
		for _, cand := range []struct {
			end end
			pt  line.Point
		}{{endFrom, sl.Line.From()}, {endTo, sl.Line.To()}} {
			if d := math.Hypot(cand.pt.X-p.X, cand.pt.Y-p.Y); d <= bestDist {
				bestDist = d
				best = &drag{e: e, end: cand.end}
			}
		}
	})
	return best
}

func (g *Game) toWorld(x, y float64) line.Point {
	zoom := g.render.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return line.Point{X: x/zoom + g.render.CamX, Y: y/zoom + g.render.CamY}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.render.Draw(g.world, screen)

	if g.cfg.Debug {
		g.pendulums.DebugDraw(screen, g.render.CamX, g.render.CamY, g.render.Zoom)
		g.drawDebug(screen)
	}
	g.hud.draw(screen, g.hudLines())
}

func (g *Game) hudLines() []string {
	lines := []string{
		fmt.Sprintf("scene %s  fps %.0f  t %.1fs", g.scene.Name, ebiten.ActualFPS(), g.scripts.Elapsed()),
		"drag endpoints  [R] reload  [D] debug  [C] copy scene",
	}
	if !g.cfg.Debug {
		return lines
	}
	ecs.ForEach(g.world, component.StretchedLineComponent.Kind(), func(_ ecs.Entity, sl *component.StretchedLine) {
		geo := sl.Line.Geometry()
		lines = append(lines, fmt.Sprintf("%-10s len %7.1f  angle %6.1fdeg  scale %.2f", sl.Name, geo.Length, geo.Angle*180/math.Pi, geo.ScaleX))
	})
	return lines
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
