package sat

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SeparationEpsilon is the overlap at or below which two projections count
// as separated. Boxes resting exactly against each other do not collide.
const SeparationEpsilon = 1e-4

// CheckCollision tests two oriented boxes. On collision the MTV points from
// b toward a: adding it to a (or subtracting it from b) separates them.
//
// Only the six face normals are tested. Edge-edge axes are skipped, so two
// boxes touching edge to edge at an angle may report a shallow false
// positive.
func CheckCollision(a, b *OrientedBox) Result {
	aMin, aMax := a.Bounds()
	bMin, bMax := b.Bounds()
	for k := 0; k < 3; k++ {
		if aMax[k] < bMin[k] || bMax[k] < aMin[k] {
			return NoCollision()
		}
	}

	aAxes, bAxes := a.Axes(), b.Axes()
	axes := [6]mgl32.Vec3{aAxes[0], aAxes[1], aAxes[2], bAxes[0], bAxes[1], bAxes[2]}

	best := math32.Inf(1)
	var mtv mgl32.Vec3
	for _, axis := range axes {
		aLo, aHi := a.project(axis)
		bLo, bHi := b.project(axis)

		// Distance a must travel along +axis or -axis to clear b.
		up := bHi - aLo
		down := aHi - bLo
		if up <= SeparationEpsilon || down <= SeparationEpsilon {
			return NoCollision()
		}

		overlap, dir := up, axis
		if down < up {
			overlap, dir = down, axis.Mul(-1)
		}
		if overlap < best {
			best = overlap
			mtv = dir.Mul(overlap)
		}
	}
	return Collision(mtv)
}
