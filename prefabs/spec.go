package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/spriteline/line"
	"gopkg.in/yaml.v3"
)

var (
	ErrLineName          = errors.New("name is required")
	ErrScriptAndPendulum = errors.New("script and pendulum both drive the endpoints")
)

// SceneSpec lists the atlases to load and the lines to spawn.
type SceneSpec struct {
	Name    string     `yaml:"name"`
	Atlases []string   `yaml:"atlases"`
	Lines   []LineSpec `yaml:"lines"`
}

type LineSpec struct {
	Name     string        `yaml:"name"`
	From     line.Point    `yaml:"from"`
	To       line.Point    `yaml:"to"`
	Frame    string        `yaml:"frame"`
	Layer    int           `yaml:"layer,omitempty"`
	Script   string        `yaml:"script,omitempty"`
	Pendulum *PendulumSpec `yaml:"pendulum,omitempty"`
}

// PendulumSpec hangs a weight at To from a pin at From.
type PendulumSpec struct {
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadScene(filename string) (SceneSpec, error) {
	scene, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return SceneSpec{}, err
	}
	if err := scene.Validate(); err != nil {
		return SceneSpec{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return scene, nil
}

// Validate checks every line and that line names are unique.
func (s SceneSpec) Validate() error {
	seen := make(map[string]bool, len(s.Lines))
	for i, l := range s.Lines {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if seen[l.Name] {
			return fmt.Errorf("line %q: duplicate name", l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}

// Validate checks a single line. Geometry is never invalid. A line is driven
// by a script or a pendulum, not both.
func (l LineSpec) Validate() error {
	if l.Name == "" {
		return ErrLineName
	}
	if l.Frame == "" {
		return fmt.Errorf("line %q: frame is required", l.Name)
	}
	if p := l.Pendulum; p != nil {
		if p.Mass < 0 {
			return fmt.Errorf("line %q: pendulum mass must not be negative", l.Name)
		}
		if l.Script != "" {
			return fmt.Errorf("line %q: %w", l.Name, ErrScriptAndPendulum)
		}
	}
	return nil
}

func MarshalScene(s SceneSpec) ([]byte, error) {
	return yaml.Marshal(s)
}
