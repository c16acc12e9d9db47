// Package line stretches a single image between two points so that it reads
// as a straight line segment.
package line

import (
	"errors"
	"fmt"
	"math"
)

// ErrAssetResolution is returned by New when the frame name does not resolve
// to a usable image.
var ErrAssetResolution = errors.New("line: asset resolution failed")

// Point is a position in the parent coordinate space of the renderable.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Frame is a resolved image and its native size in pixels.
type Frame struct {
	Name   string
	Width  float64
	Height float64
	Image  any
}

// Resolver looks up a frame by name.
type Resolver interface {
	Resolve(name string) (Frame, error)
}

// Renderable is the quad a StretchedLine drives. Rotation and scale are
// applied around the image centre.
type Renderable interface {
	SetPosition(p Point)
	SetRotation(angle float64)
	SetScale(x, y float64)
}

// RenderableFactory creates the renderable owned by a new line.
type RenderableFactory func(f Frame) Renderable

// Geometry is the transform derived from two endpoints.
type Geometry struct {
	Length float64
	Angle  float64
	Mid    Point
	ScaleX float64
	ScaleY float64
}

// Compute derives the transform that stretches an image of width baseWidth
// from one point to another. The angle is atan2(dy, dx) in the points' own
// coordinate space.
func Compute(from, to Point, baseWidth float64) Geometry {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := math.Sqrt(dx*dx + dy*dy)

	scaleX := 0.0
	if baseWidth > 0 {
		scaleX = length / baseWidth
	}

	return Geometry{
		Length: length,
		Angle:  math.Atan2(dy, dx),
		Mid:    Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2},
		ScaleX: scaleX,
		ScaleY: 1,
	}
}

// StretchedLine owns a renderable and keeps its transform in step with two
// endpoints.
type StretchedLine struct {
	from       Point
	to         Point
	frame      Frame
	geometry   Geometry
	renderable Renderable
}

// New resolves frameName, creates the renderable and applies the initial
// geometry. The factory is not called when resolution fails.
func New(from, to Point, frameName string, res Resolver, newRenderable RenderableFactory) (*StretchedLine, error) {
	if res == nil {
		return nil, fmt.Errorf("%w: %q: nil resolver", ErrAssetResolution, frameName)
	}
	if newRenderable == nil {
		return nil, fmt.Errorf("line: nil renderable factory")
	}
	if frameName == "" {
		return nil, fmt.Errorf("%w: empty frame name", ErrAssetResolution)
	}

	frame, err := res.Resolve(frameName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrAssetResolution, frameName, err)
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, fmt.Errorf("%w: %q: invalid size %vx%v", ErrAssetResolution, frameName, frame.Width, frame.Height)
	}
	if frame.Name == "" {
		frame.Name = frameName
	}

	r := newRenderable(frame)
	if r == nil {
		return nil, fmt.Errorf("line: renderable factory returned nil for %q", frameName)
	}

	l := &StretchedLine{
		from:       from,
		to:         to,
		frame:      frame,
		renderable: r,
	}
	l.apply()
	return l, nil
}

// apply recomputes the geometry and pushes it to the renderable. Every
// mutator ends here.
func (l *StretchedLine) apply() {
	l.geometry = Compute(l.from, l.to, l.frame.Width)
	l.renderable.SetPosition(l.geometry.Mid)
	l.renderable.SetRotation(l.geometry.Angle)
	l.renderable.SetScale(l.geometry.ScaleX, l.geometry.ScaleY)
}

// Length is the current distance between the endpoints.
func (l *StretchedLine) Length() float64 {
	return l.geometry.Length
}

// From returns the start point.
func (l *StretchedLine) From() Point {
	return l.from
}

// To returns the end point.
func (l *StretchedLine) To() Point {
	return l.to
}

// SetFrom moves the start point.
func (l *StretchedLine) SetFrom(p Point) {
	l.from = p
	l.apply()
}

// SetTo moves the end point.
func (l *StretchedLine) SetTo(p Point) {
	l.to = p
	l.apply()
}

// SetEndpoints moves both points with a single recompute.
func (l *StretchedLine) SetEndpoints(from, to Point) {
	l.from = from
	l.to = to
	l.apply()
}

// Geometry returns the transform last applied to the renderable.
func (l *StretchedLine) Geometry() Geometry {
	return l.geometry
}

// Thickness is the native height of the frame; it is never scaled.
func (l *StretchedLine) Thickness() float64 {
	return l.frame.Height
}

// Frame returns the frame resolved at construction.
func (l *StretchedLine) Frame() Frame {
	return l.frame
}

// Renderable returns the quad the line owns and drives.
func (l *StretchedLine) Renderable() Renderable {
	return l.renderable
}
