package sat

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var zAxis = mgl32.Vec3{0, 0, 1}

// Triangle is an immutable piece of static geometry. Every point p on its
// plane satisfies Normal.Dot(p) + D == 0.
type Triangle struct {
	V      [3]mgl32.Vec3
	Normal mgl32.Vec3
	D      float32
}

// Degenerate reports whether a, b and c are collinear.
func Degenerate(a, b, c mgl32.Vec3) bool {
	return b.Sub(a).Cross(c.Sub(a)).Len() < degenerateLen
}

// NewTriangle precomputes the unit normal (right handed winding a, b, c)
// and plane scalar. Collinear vertices panic.
func NewTriangle(a, b, c mgl32.Vec3) Triangle {
	if Degenerate(a, b, c) {
		panic(fmt.Sprintf("sat: degenerate triangle %v %v %v", a, b, c))
	}
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return Triangle{
		V:      [3]mgl32.Vec3{a, b, c},
		Normal: n,
		D:      -n.Dot(a),
	}
}

// SignedDistance is Normal.Dot(p) + D.
func (t *Triangle) SignedDistance(p mgl32.Vec3) float32 {
	return t.Normal.Dot(p) + t.D
}

// ProjectPointZ moves p along world Z onto the triangle's plane. It reports
// false for planes parallel to Z, which have no such projection.
func (t *Triangle) ProjectPointZ(p mgl32.Vec3) (mgl32.Vec3, bool) {
	denom := t.Normal.Dot(zAxis)
	if math32.Abs(denom) < 1e-6 {
		return p, false
	}
	dz := t.Normal.Dot(t.V[0].Sub(p)) / denom
	return mgl32.Vec3{p.X(), p.Y(), p.Z() + dz}, true
}

// Inside reports whether p, assumed to lie on the triangle's plane, is
// within the triangle. Points on an edge are inside.
func (t *Triangle) Inside(p mgl32.Vec3) bool {
	a, b, c := t.V[0], t.V[1], t.V[2]
	return sameSide(p, a, b, c) && sameSide(p, b, a, c) && sameSide(p, c, a, b)
}

// sameSide reports whether p and ref lie on the same side of the line
// through a and b.
func sameSide(p, ref, a, b mgl32.Vec3) bool {
	ab := b.Sub(a)
	cp1 := ab.Cross(p.Sub(a))
	cp2 := ab.Cross(ref.Sub(a))
	return cp1.Dot(cp2) >= 0
}

// Footprint returns the triangle's bounds in the XY plane.
func (t *Triangle) Footprint() (minX, minY, maxX, maxY float32) {
	minX, minY = t.V[0].X(), t.V[0].Y()
	maxX, maxY = minX, minY
	for _, v := range t.V[1:] {
		minX = math32.Min(minX, v.X())
		minY = math32.Min(minY, v.Y())
		maxX = math32.Max(maxX, v.X())
		maxY = math32.Max(maxY, v.Y())
	}
	return minX, minY, maxX, maxY
}
