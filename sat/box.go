package sat

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrientedBox stores its eight world-space corners. V[0..3] is one face and
// V[i+4] is the corner opposite V[i] on the parallel face.
//
//	  7-----6
//	 /|    /|
//	4-----5 |
//	| 3---|-2
//	|/    |/
//	0-----1
type OrientedBox struct {
	V [8]mgl32.Vec3
}

// boxEdges indexes the 12 edges of an OrientedBox.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

var cornerSigns = [8]mgl32.Vec3{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// NewOrientedBox builds a box around center, rotated by rotation, with the
// given half extents along its local axes.
func NewOrientedBox(center mgl32.Vec3, rotation mgl32.Quat, halfExtents mgl32.Vec3) OrientedBox {
	if halfExtents.X() <= 0 || halfExtents.Y() <= 0 || halfExtents.Z() <= 0 {
		panic(fmt.Sprintf("sat: box half extents must be positive, got %v", halfExtents))
	}
	var b OrientedBox
	for i, s := range cornerSigns {
		local := mgl32.Vec3{s.X() * halfExtents.X(), s.Y() * halfExtents.Y(), s.Z() * halfExtents.Z()}
		b.V[i] = center.Add(rotation.Rotate(local))
	}
	return b
}

// NewAxisAlignedBox builds an unrotated box from its min and max corners.
func NewAxisAlignedBox(min, max mgl32.Vec3) OrientedBox {
	center := min.Add(max).Mul(0.5)
	return NewOrientedBox(center, mgl32.QuatIdent(), max.Sub(min).Mul(0.5))
}

func (b *OrientedBox) Center() mgl32.Vec3 {
	return b.V[0].Add(b.V[6]).Mul(0.5)
}

// Translate moves every corner by d.
func (b *OrientedBox) Translate(d mgl32.Vec3) {
	for i := range b.V {
		b.V[i] = b.V[i].Add(d)
	}
}

// Bounds returns the world-space axis aligned bounds of the corners.
func (b *OrientedBox) Bounds() (min, max mgl32.Vec3) {
	min, max = b.V[0], b.V[0]
	for _, v := range b.V[1:] {
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return min, max
}

// Axes returns the three unique face normals as cross products of the
// edges meeting at V[0].
func (b *OrientedBox) Axes() [3]mgl32.Vec3 {
	e1 := b.V[1].Sub(b.V[0])
	e2 := b.V[3].Sub(b.V[0])
	e3 := b.V[4].Sub(b.V[0])
	return [3]mgl32.Vec3{
		mustNormalize(e2.Cross(e3)),
		mustNormalize(e3.Cross(e1)),
		mustNormalize(e1.Cross(e2)),
	}
}

// Edge returns the endpoints of edge i in [0,12).
func (b *OrientedBox) Edge(i int) (mgl32.Vec3, mgl32.Vec3) {
	e := boxEdges[i]
	return b.V[e[0]], b.V[e[1]]
}

// BottomFace returns V[0..3].
func (b *OrientedBox) BottomFace() [4]mgl32.Vec3 {
	return [4]mgl32.Vec3{b.V[0], b.V[1], b.V[2], b.V[3]}
}

func (b *OrientedBox) project(axis mgl32.Vec3) (lo, hi float32) {
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for _, v := range b.V {
		d := v.Dot(axis)
		lo = math32.Min(lo, d)
		hi = math32.Max(hi, d)
	}
	return lo, hi
}

const degenerateLen = 1e-12

func mustNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < degenerateLen || math32.IsNaN(l) {
		panic(fmt.Sprintf("sat: cannot normalize degenerate vector %v", v))
	}
	return v.Mul(1 / l)
}
