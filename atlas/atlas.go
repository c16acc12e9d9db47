package atlas

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteline/assets"
	"github.com/milk9111/spriteline/line"
	"gopkg.in/yaml.v3"
)

var ErrFrameNotFound = errors.New("atlas: frame not found")

// FrameDefinition is a named rectangle in the sheet, in pixels. A zero W or
// H falls back to the atlas frame size.
type FrameDefinition struct {
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	W    int    `yaml:"w"`
	H    int    `yaml:"h"`
}

// Config is the YAML description of a sprite sheet.
type Config struct {
	Name        string            `yaml:"name"`
	Image       string            `yaml:"image"`
	FrameWidth  int               `yaml:"frame_width"`
	FrameHeight int               `yaml:"frame_height"`
	Frames      []FrameDefinition `yaml:"frames"`
}

// Atlas is a loaded sheet with frames looked up by name.
type Atlas struct {
	Config Config
	Image  *ebiten.Image

	byName map[string]image.Rectangle
}

func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("atlas: parse config: %w", err)
	}
	return cfg, nil
}

// New indexes cfg's frames. img may be nil, in which case resolved frames
// carry sizes but no image.
func New(cfg Config, img *ebiten.Image) (*Atlas, error) {
	byName := make(map[string]image.Rectangle, len(cfg.Frames))
	for i, f := range cfg.Frames {
		if f.Name == "" {
			return nil, fmt.Errorf("atlas %q: frame %d has no name", cfg.Name, i)
		}
		if _, dup := byName[f.Name]; dup {
			return nil, fmt.Errorf("atlas %q: duplicate frame %q", cfg.Name, f.Name)
		}
		w, h := f.W, f.H
		if w == 0 {
			w = cfg.FrameWidth
		}
		if h == 0 {
			h = cfg.FrameHeight
		}
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("atlas %q: frame %q has invalid size %dx%d", cfg.Name, f.Name, w, h)
		}
		rect := image.Rect(f.X, f.Y, f.X+w, f.Y+h)
		if img != nil && !rect.In(img.Bounds()) {
			return nil, fmt.Errorf("atlas %q: frame %q %v outside image %v", cfg.Name, f.Name, rect, img.Bounds())
		}
		byName[f.Name] = rect
	}

	return &Atlas{Config: cfg, Image: img, byName: byName}, nil
}

// Load reads an atlas config and its image from assets.
func Load(configPath string) (*Atlas, error) {
	data, err := assets.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("atlas: read config %s: %w", configPath, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	if cfg.Image == "" {
		return nil, fmt.Errorf("atlas: %s: image is required", configPath)
	}
	img, err := assets.LoadImage(cfg.Image)
	if err != nil {
		return nil, fmt.Errorf("atlas: load image %s: %w", cfg.Image, err)
	}
	return New(cfg, img)
}

// Rect returns the pixel rectangle of a named frame.
func (a *Atlas) Rect(name string) (image.Rectangle, bool) {
	if a == nil {
		return image.Rectangle{}, false
	}
	r, ok := a.byName[name]
	return r, ok
}

// Resolve implements line.Resolver.
func (a *Atlas) Resolve(name string) (line.Frame, error) {
	rect, ok := a.Rect(name)
	if !ok {
		return line.Frame{}, fmt.Errorf("%w: %s", ErrFrameNotFound, name)
	}
	f := line.Frame{
		Name:   name,
		Width:  float64(rect.Dx()),
		Height: float64(rect.Dy()),
	}
	if a.Image != nil {
		if sub, ok := a.Image.SubImage(rect).(*ebiten.Image); ok {
			f.Image = sub
		}
	}
	return f, nil
}

// Names returns the frame names in declaration order.
func (a *Atlas) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, 0, len(a.Config.Frames))
	for _, f := range a.Config.Frames {
		names = append(names, f.Name)
	}
	return names
}
