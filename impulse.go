package collide

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/gekko-collide/sat"
	"github.com/go-gl/mathgl/mgl32"
)

// Body is a dynamic participant in impulse resolution. Box is its hitbox in
// world space for this frame and is moved with positional corrections.
type Body struct {
	State *PhysicalState
	Box   sat.OrientedBox
}

// Manifold is the contact between bodies A and B for one frame.
type Manifold struct {
	A, B        int
	Penetration float32
	Normal      mgl32.Vec3 // unit, from A toward B
}

type ImpulseResolver struct {
	Physics *PhysicsWorld
	log     Logger
	grid    *SpatialHashGrid
}

func NewImpulseResolver(physics *PhysicsWorld, log Logger) *ImpulseResolver {
	if physics == nil {
		physics = NewPhysicsWorld()
	}
	return &ImpulseResolver{Physics: physics, log: orNop(log)}
}

// Resolve finds every colliding pair, applies velocity impulses to all of
// them and then corrects positions. It returns the manifolds it used.
func (r *ImpulseResolver) Resolve(bodies []Body) []Manifold {
	manifolds := r.Manifolds(bodies)
	r.ApplyImpulses(bodies, manifolds)
	r.CorrectPositions(bodies, manifolds)
	if len(manifolds) > 0 {
		r.log.Debugf("impulse: %d contacts among %d bodies", len(manifolds), len(bodies))
	}
	return manifolds
}

// Manifolds tests candidate pairs in (A, B) order. Pairs of two immovable
// bodies are skipped.
func (r *ImpulseResolver) Manifolds(bodies []Body) []Manifold {
	var manifolds []Manifold
	r.forPairs(bodies, func(i, j int) {
		a, b := &bodies[i], &bodies[j]
		if a.State.InverseMass+b.State.InverseMass == 0 {
			return
		}
		mtv, ok := sat.CheckCollision(&a.Box, &b.Box).MTV()
		if !ok {
			return
		}
		depth := mtv.Len()
		if depth == 0 {
			return
		}
		manifolds = append(manifolds, Manifold{
			A:           i,
			B:           j,
			Penetration: depth,
			Normal:      mtv.Mul(-1 / depth),
		})
	})
	return manifolds
}

func (r *ImpulseResolver) forPairs(bodies []Body, fn func(i, j int)) {
	if r.Physics.DynamicCellSize <= 0 {
		for i := range bodies {
			for j := i + 1; j < len(bodies); j++ {
				fn(i, j)
			}
		}
		return
	}

	if r.grid == nil || r.grid.cellSize != r.Physics.DynamicCellSize {
		r.grid = NewSpatialHashGrid(r.Physics.DynamicCellSize)
	}
	boxes := make([]AABB, len(bodies))
	for i := range bodies {
		boxes[i] = BoxAABB(&bodies[i].Box)
	}
	for _, p := range r.grid.Pairs(boxes) {
		fn(p[0], p[1])
	}
}

// ApplyImpulses changes velocities along each contact normal. Pairs already
// separating are left alone.
func (r *ImpulseResolver) ApplyImpulses(bodies []Body, manifolds []Manifold) {
	e := r.Physics.Restitution
	for _, m := range manifolds {
		a, b := bodies[m.A].State, bodies[m.B].State
		invSum := a.InverseMass + b.InverseMass
		if invSum == 0 {
			continue
		}

		vn := b.Velocity.Sub(a.Velocity).Dot(m.Normal)
		if vn > 0 {
			continue
		}

		j := -(1 + e) * vn / invSum
		impulse := m.Normal.Mul(j)
		a.Velocity = a.Velocity.Sub(impulse.Mul(a.InverseMass))
		b.Velocity = b.Velocity.Add(impulse.Mul(b.InverseMass))
	}
}

// CorrectPositions pushes each pair apart by a fraction of the penetration
// beyond the allowed slop, split by inverse mass.
func (r *ImpulseResolver) CorrectPositions(bodies []Body, manifolds []Manifold) {
	slop, percent := r.Physics.Slop, r.Physics.CorrectionPercent
	for _, m := range manifolds {
		a, b := &bodies[m.A], &bodies[m.B]
		invSum := a.State.InverseMass + b.State.InverseMass
		if invSum == 0 {
			continue
		}

		amount := math32.Max(m.Penetration-slop, 0) / invSum * percent
		if amount == 0 {
			continue
		}
		correction := m.Normal.Mul(amount)

		da := correction.Mul(-a.State.InverseMass)
		db := correction.Mul(b.State.InverseMass)
		a.State.Position = a.State.Position.Add(da)
		b.State.Position = b.State.Position.Add(db)
		a.Box.Translate(da)
		b.Box.Translate(db)
	}
}
