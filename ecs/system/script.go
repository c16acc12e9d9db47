package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/spriteline/ecs"
	"github.com/milk9111/spriteline/ecs/component"
	"github.com/milk9111/spriteline/line"
	"github.com/milk9111/spriteline/prefabs"
	"github.com/rs/zerolog"
)

const defaultStep = 1.0 / 60.0

// Globals shared between the engine and a line script. Scripts read all
// five and may reassign the four endpoint coordinates.
var lineScriptGlobals = []string{"t", "from_x", "from_y", "to_x", "to_y"}

// ScriptSystem runs each line's tengo script once per tick and moves the
// line to whatever endpoints the script leaves behind. A script that fails to
// load, compile or run is detached from its line, leaving the line where it
// was.
type ScriptSystem struct {
	Logger zerolog.Logger
	Step   float64

	elapsed float64
	cache   map[string]*tengo.Compiled
	load    func(path string) ([]byte, error)
}

func NewScriptSystem(logger zerolog.Logger) *ScriptSystem {
	return &ScriptSystem{
		Logger: logger,
		Step:   defaultStep,
		cache:  make(map[string]*tengo.Compiled),
		load:   prefabs.LoadScript,
	}
}

// Reset forgets compiled scripts and restarts the clock.
func (s *ScriptSystem) Reset() {
	s.elapsed = 0
	s.cache = make(map[string]*tengo.Compiled)
}

func (s *ScriptSystem) Elapsed() float64 {
	return s.elapsed
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	step := s.Step
	if step <= 0 {
		step = defaultStep
	}
	s.elapsed += step

	ecs.ForEach2(w, component.LineScriptComponent.Kind(), component.StretchedLineComponent.Kind(), func(e ecs.Entity, ls *component.LineScript, sl *component.StretchedLine) {
		if sl.Line == nil {
			return
		}
		if ls.Compiled == nil {
			c, err := s.compiled(ls.Path)
			if err != nil {
				ecs.Remove(w, e, component.LineScriptComponent.Kind())
				s.Logger.Error().Err(err).Str("script", ls.Path).Stringer("entity", e).Msg("compile line script")
				return
			}
			ls.Compiled = c
		}

		from, to, err := RunLineScript(ls.Compiled, s.elapsed, sl.Line.From(), sl.Line.To())
		if err != nil {
			ecs.Remove(w, e, component.LineScriptComponent.Kind())
			s.Logger.Error().Err(err).Str("script", ls.Path).Str("line", sl.Name).Msg("run line script")
			return
		}
		if from != sl.Line.From() || to != sl.Line.To() {
			sl.Line.SetEndpoints(from, to)
		}
	})
}

// compiled returns a private copy of the script at path, compiling it on
// first use.
func (s *ScriptSystem) compiled(path string) (*tengo.Compiled, error) {
	if s.cache == nil {
		s.cache = make(map[string]*tengo.Compiled)
	}
	if c, ok := s.cache[path]; ok {
		return c.Clone(), nil
	}
	load := s.load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, err
	}
	c, err := CompileLineScript(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.cache[path] = c
	return c.Clone(), nil
}

// CompileLineScript compiles src with the line globals predeclared and the
// tengo stdlib importable.
func CompileLineScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for _, name := range lineScriptGlobals {
		if err := script.Add(name, 0.0); err != nil {
			return nil, err
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

// RunLineScript runs c once at time t and returns the endpoints it left.
func RunLineScript(c *tengo.Compiled, t float64, from, to line.Point) (line.Point, line.Point, error) {
	inputs := map[string]float64{"t": t, "from_x": from.X, "from_y": from.Y, "to_x": to.X, "to_y": to.Y}
	for _, name := range lineScriptGlobals {
		if err := c.Set(name, inputs[name]); err != nil {
			return from, to, err
		}
	}
	if err := c.Run(); err != nil {
		return from, to, err
	}

	var out [4]float64
	for i, name := range lineScriptGlobals[1:] {
		v, err := number(c, name)
		if err != nil {
			return from, to, err
		}
		out[i] = v
	}
	return line.Point{X: out[0], Y: out[1]}, line.Point{X: out[2], Y: out[3]}, nil
}

func number(c *tengo.Compiled, name string) (float64, error) {
	switch v := c.Get(name).Value().(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("line script: %s must be a number, got %T", name, v)
	}
}
