package collide

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/gekko-collide/sat"
	"github.com/go-gl/mathgl/mgl32"
)

// MovementResolver pushes kinematic entities out of the static world and
// keeps their ground state. It never changes the world.
type MovementResolver struct {
	World   *StaticWorld
	Physics *PhysicsWorld
	log     Logger

	scratch []sat.Triangle
}

func NewMovementResolver(world *StaticWorld, physics *PhysicsWorld, log Logger) *MovementResolver {
	if physics == nil {
		physics = NewPhysicsWorld()
	}
	return &MovementResolver{World: world, Physics: physics, log: orNop(log)}
}

// Resolve corrects s against the terrain near box, the entity's hitbox in
// world space for this frame. box is moved along with s. The returned
// result is the terrain contact before hysteresis was applied.
func (r *MovementResolver) Resolve(s *PhysicalState, box *sat.OrientedBox) sat.Result {
	if r.World == nil {
		return sat.NoCollision()
	}
	r.scratch = r.World.Gather(r.scratch[:0], r.World.NearbyBox(box))

	res := sat.CheckCollisionTriangles(box, r.scratch, r.Physics.ContactMerge)
	if mtv, ok := res.MTV(); ok {
		moved := ApplyCorrection(s, mtv, r.Physics.CorrectionThreshold)
		box.Translate(moved)
		r.land(s)
		return res
	}

	r.settle(s, box, r.scratch)
	return res
}

// ApplyCorrection adds each component of mtv to the position only when its
// magnitude exceeds threshold and returns what was applied.
func ApplyCorrection(s *PhysicalState, mtv mgl32.Vec3, threshold float32) mgl32.Vec3 {
	var applied mgl32.Vec3
	for k := 0; k < 3; k++ {
		if math32.Abs(mtv[k]) > threshold {
			s.Position[k] += mtv[k]
			applied[k] = mtv[k]
		}
	}
	return applied
}

// settle runs when the box touches nothing: each bottom corner is dropped
// along Z onto the candidate triangles. Any hit within the ground band keeps
// the entity grounded and the smallest gap is snapped away; no hit means
// the entity is falling. Rising entities are airborne and not probed.
func (r *MovementResolver) settle(s *PhysicalState, box *sat.OrientedBox, tris []sat.Triangle) {
	if s.Velocity.Z() > 0 {
		r.fall(s)
		return
	}

	band := r.Physics.GroundBand
	eps := r.Physics.SnapEpsilon
	supported := false
	gap := math32.Inf(1)
	for _, corner := range box.BottomFace() {
		for i := range tris {
			p, ok := tris[i].ProjectPointZ(corner)
			if !ok || !tris[i].Inside(p) {
				continue
			}
			g := corner.Z() - p.Z()
			if g < -eps || g > band {
				continue
			}
			supported = true
			gap = math32.Min(gap, g)
		}
	}

	if !supported {
		r.fall(s)
		return
	}
	if gap > eps {
		s.Position[2] -= gap
		box.Translate(mgl32.Vec3{0, 0, -gap})
	}
	r.land(s)
}

func (r *MovementResolver) land(s *PhysicalState) {
	if s.Falling {
		r.log.Debugf("grounded at %v", s.Position)
	}
	s.Falling = false
	s.Velocity[2] = 0
}

func (r *MovementResolver) fall(s *PhysicalState) {
	if !s.Falling {
		r.log.Debugf("falling from %v", s.Position)
	}
	s.Falling = true
}
