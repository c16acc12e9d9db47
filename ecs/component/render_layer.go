package component

// RenderLayer orders drawing; lower Index draws first, ties by entity.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
