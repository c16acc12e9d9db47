package component

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is the image drawn at an entity's Transform. OriginX/OriginY is the
// pivot in image pixels.
type Sprite struct {
	Image   *ebiten.Image
	OriginX float64
	OriginY float64
	Hidden  bool
}

var SpriteComponent = NewComponent[Sprite]()
