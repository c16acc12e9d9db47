package atlas

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteline/line"
)

// Registry resolves names against standalone images first, then each atlas
// in the order added.
type Registry struct {
	atlases []*Atlas
	images  map[string]*ebiten.Image
}

func NewRegistry() *Registry {
	return &Registry{images: make(map[string]*ebiten.Image)}
}

// AddAtlas appends an atlas to the lookup order.
func (r *Registry) AddAtlas(a *Atlas) {
	if r == nil || a == nil {
		return
	}
	r.atlases = append(r.atlases, a)
}

// RegisterImage stores a whole image under key.
func (r *Registry) RegisterImage(key string, img *ebiten.Image) {
	if r == nil || key == "" || img == nil {
		return
	}
	r.images[key] = img
}

// Resolve implements line.Resolver.
func (r *Registry) Resolve(name string) (line.Frame, error) {
	if r == nil {
		return line.Frame{}, fmt.Errorf("%w: %s", ErrFrameNotFound, name)
	}
	if img, ok := r.images[name]; ok {
		b := img.Bounds()
		return line.Frame{
			Name:   name,
			Width:  float64(b.Dx()),
			Height: float64(b.Dy()),
			Image:  img,
		}, nil
	}
	for _, a := range r.atlases {
		if _, ok := a.Rect(name); ok {
			return a.Resolve(name)
		}
	}
	return line.Frame{}, fmt.Errorf("%w: %s", ErrFrameNotFound, name)
}
