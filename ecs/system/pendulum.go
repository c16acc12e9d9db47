package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spriteline/ecs"
	"github.com/milk9111/spriteline/ecs/component"
	"github.com/milk9111/spriteline/line"
)

const (
	DefaultGravity   = 900.0
	defaultBobMass   = 1.0
	defaultBobRadius = 4.0
)

// PendulumSystem hangs a chipmunk body off each Pendulum line's anchor and
// writes the body position back into the line's far end every tick.
type PendulumSystem struct {
	Step float64

	space  *cp.Space
	bodies map[ecs.Entity]*component.Pendulum
}

func NewPendulumSystem(gravity float64) *PendulumSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PendulumSystem{
		Step:   defaultStep,
		space:  space,
		bodies: make(map[ecs.Entity]*component.Pendulum),
	}
}

func (p *PendulumSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	p.prune(w)

	ecs.ForEach2(w, component.PendulumComponent.Kind(), component.StretchedLineComponent.Kind(), func(e ecs.Entity, pc *component.Pendulum, sl *component.StretchedLine) {
		if pc.Body == nil && sl.Line != nil {
			p.attach(e, pc, sl.Line.To())
		}
	})

	step := p.Step
	if step <= 0 {
		step = defaultStep
	}
	p.space.Step(step)

	ecs.ForEach2(w, component.PendulumComponent.Kind(), component.StretchedLineComponent.Kind(), func(_ ecs.Entity, pc *component.Pendulum, sl *component.StretchedLine) {
		if pc.Body == nil || sl.Line == nil {
			return
		}
		pos := pc.Body.Position()
		sl.Line.SetEndpoints(line.Point{X: pc.AnchorX, Y: pc.AnchorY}, line.Point{X: pos.X, Y: pos.Y})
	})
}

func (p *PendulumSystem) attach(e ecs.Entity, pc *component.Pendulum, bob line.Point) {
	mass := pc.Mass
	if mass <= 0 {
		mass = defaultBobMass
	}
	radius := pc.Radius
	if radius <= 0 {
		radius = defaultBobRadius
	}

	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: bob.X, Y: bob.Y})
	p.space.AddBody(body)

	// pin length is fixed at the distance between anchor and bob right now
	joint := cp.NewPinJoint(body, p.space.StaticBody, cp.Vector{}, cp.Vector{X: pc.AnchorX, Y: pc.AnchorY})
	p.space.AddConstraint(joint)

	pc.Body = body
	pc.Joint = joint
	p.bodies[e] = pc
}

// prune drops bodies whose entity or Pendulum component has gone away.
func (p *PendulumSystem) prune(w *ecs.World) {
	for e, pc := range p.bodies {
		if cur, ok := ecs.Get(w, e, component.PendulumComponent.Kind()); ok && cur == pc {
			continue
		}
		p.detach(pc)
		delete(p.bodies, e)
	}
}

func (p *PendulumSystem) detach(pc *component.Pendulum) {
	if pc.Joint != nil {
		p.space.RemoveConstraint(pc.Joint)
		pc.Joint = nil
	}
	if pc.Body != nil {
		p.space.RemoveBody(pc.Body)
		pc.Body = nil
	}
}

// Reset removes every body from the space.
func (p *PendulumSystem) Reset() {
	for e, pc := range p.bodies {
		p.detach(pc)
		delete(p.bodies, e)
	}
}
