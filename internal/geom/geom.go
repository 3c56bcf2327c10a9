// Package geom has the small amount of 2D math the game needs: vectors and
// axis-aligned box overlap between centred boxes.
package geom

import "math"

// Vec2 is a point or direction in world units, y up.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(f float32) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Rect is an axis-aligned box given by its centre and full size.
type Rect struct {
	Center Vec2
	Size   Vec2
}

func (r Rect) Min() Vec2 {
	return r.Center.Sub(r.Size.Scale(0.5))
}

func (r Rect) Max() Vec2 {
	return r.Center.Add(r.Size.Scale(0.5))
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	lo, hi := r.Min(), r.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// Collision names the side of box b that box a hit.
type Collision int

const (
	Left Collision = iota
	Right
	Top
	Bottom
	Inside
)

func (c Collision) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "inside"
	}
}

// Collide tests box a (centre aPos, size aSize) against box b. Boxes that only
// touch along an edge do not collide. When a straddles both an x and a y edge
// of b, the side with the shallower penetration wins.
func Collide(aPos, aSize, bPos, bSize Vec2) (Collision, bool) {
	a := Rect{Center: aPos, Size: aSize}
	b := Rect{Center: bPos, Size: bSize}
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()

	if !(aMin.X < bMax.X && aMax.X > bMin.X && aMin.Y < bMax.Y && aMax.Y > bMin.Y) {
		return Inside, false
	}

	xSide, xDepth := Inside, float32(math.Inf(-1))
	switch {
	case aMin.X < bMin.X && aMax.X > bMin.X && aMax.X < bMax.X:
		xSide, xDepth = Left, bMin.X-aMax.X
	case aMin.X > bMin.X && aMin.X < bMax.X && aMax.X > bMax.X:
		xSide, xDepth = Right, aMin.X-bMax.X
	}

	ySide, yDepth := Inside, float32(math.Inf(-1))
	switch {
	case aMin.Y < bMin.Y && aMax.Y > bMin.Y && aMax.Y < bMax.Y:
		ySide, yDepth = Bottom, bMin.Y-aMax.Y
	case aMin.Y > bMin.Y && aMin.Y < bMax.Y && aMax.Y > bMax.Y:
		ySide, yDepth = Top, aMin.Y-bMax.Y
	}

	if abs(yDepth) < abs(xDepth) {
		return ySide, true
	}
	return xSide, true
}

func abs(f float32) float32 {
	return float32(math.Abs(float64(f)))
}
