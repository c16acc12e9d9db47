package component

import "github.com/jakecoffman/cp"

// Pendulum swings a line's far end on a pin joint around a fixed anchor.
type Pendulum struct {
	AnchorX float64
	AnchorY float64
	Mass    float64
	Radius  float64

	Body  *cp.Body
	Joint *cp.Constraint
}

var PendulumComponent = NewComponent[Pendulum]()
