// Package sat holds the narrow phase: oriented boxes, static triangles and
// separating axis tests between them.
package sat

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Result is either no collision or a collision carrying the minimum
// translation vector. The vector is only reachable through MTV, which also
// reports whether there was a collision.
type Result struct {
	mtv mgl32.Vec3
	hit bool
}

func NoCollision() Result { return Result{} }

func Collision(mtv mgl32.Vec3) Result {
	return Result{mtv: mtv, hit: true}
}

func (r Result) Collided() bool { return r.hit }

// MTV returns the minimum translation vector and true on collision.
func (r Result) MTV() (mgl32.Vec3, bool) {
	return r.mtv, r.hit
}

// Depth is the length of the translation vector, 0 without a collision.
func (r Result) Depth() float32 {
	if !r.hit {
		return 0
	}
	return r.mtv.Len()
}

func (r Result) String() string {
	if !r.hit {
		return "NoCollision"
	}
	return fmt.Sprintf("Collision(%.4f, %.4f, %.4f)", r.mtv.X(), r.mtv.Y(), r.mtv.Z())
}
