package component

// Transform places an entity in world space. Rotation is in radians and is
// applied around the sprite origin.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
