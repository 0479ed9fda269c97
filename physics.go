// Package collide resolves collisions for a frame-stepped 3D scene: a
// quadtree over static terrain feeds separating axis tests, a movement
// resolver keeps characters on the ground and an impulse resolver bounces
// dynamic bodies off each other.
package collide

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/gekko-collide/sat"
	"github.com/go-gl/mathgl/mgl32"
)

// MotionState is the ground state the movement resolver maintains.
type MotionState int

const (
	Grounded MotionState = iota
	Falling
)

func (m MotionState) String() string {
	if m == Falling {
		return "falling"
	}
	return "grounded"
}

// PhysicalState is owned by one entity and mutated in place every frame.
type PhysicalState struct {
	Position    mgl32.Vec3
	Velocity    mgl32.Vec3
	Orientation mgl32.Quat
	Facing      mgl32.Vec3
	MaxSpeed    float32
	InverseMass float32 // 0 is immovable
	Falling     bool
	Scale       mgl32.Vec3
}

// NewPhysicalState returns an upright state facing +X. A mass <= 0 makes
// the entity immovable.
func NewPhysicalState(position mgl32.Vec3, mass float32) *PhysicalState {
	s := &PhysicalState{
		Position:    position,
		Orientation: mgl32.QuatIdent(),
		Facing:      mgl32.Vec3{1, 0, 0},
		Scale:       mgl32.Vec3{1, 1, 1},
		Falling:     true,
	}
	s.SetMass(mass)
	return s
}

func (s *PhysicalState) SetMass(mass float32) {
	if mass <= 0 {
		s.InverseMass = 0
		return
	}
	s.InverseMass = 1 / mass
}

func (s *PhysicalState) Immovable() bool { return s.InverseMass == 0 }

func (s *PhysicalState) Motion() MotionState {
	if s.Falling {
		return Falling
	}
	return Grounded
}

func (s *PhysicalState) ApplyImpulse(impulse mgl32.Vec3) {
	s.Velocity = s.Velocity.Add(impulse.Mul(s.InverseMass))
}

// Face turns the entity toward the horizontal part of dir. Directions with
// no horizontal component are ignored.
func (s *PhysicalState) Face(dir mgl32.Vec3) {
	flat := mgl32.Vec3{dir.X(), dir.Y(), 0}
	if flat.Len() < 1e-4 {
		return
	}
	s.Facing = flat.Normalize()
	s.Orientation = mgl32.QuatRotate(math32.Atan2(s.Facing.Y(), s.Facing.X()), mgl32.Vec3{0, 0, 1})
}

// Hitbox is a box in entity space. Offset is the box center relative to the
// entity position before rotation, both scaled by PhysicalState.Scale.
type Hitbox struct {
	Offset      mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// FootHitbox returns a width x depth x height box whose bottom face sits at
// the entity position.
func FootHitbox(width, depth, height float32) Hitbox {
	return Hitbox{
		Offset:      mgl32.Vec3{0, 0, height / 2},
		HalfExtents: mgl32.Vec3{width / 2, depth / 2, height / 2},
	}
}

// WorldBox places the hitbox in world space for this frame.
func (h Hitbox) WorldBox(s *PhysicalState) sat.OrientedBox {
	scale := s.Scale
	for k := 0; k < 3; k++ {
		if math32.Abs(scale[k]) < 0.001 {
			scale[k] = 1
		} else {
			scale[k] = math32.Abs(scale[k])
		}
	}
	offset := mgl32.Vec3{h.Offset.X() * scale.X(), h.Offset.Y() * scale.Y(), h.Offset.Z() * scale.Z()}
	half := mgl32.Vec3{h.HalfExtents.X() * scale.X(), h.HalfExtents.Y() * scale.Y(), h.HalfExtents.Z() * scale.Z()}
	center := s.Position.Add(s.Orientation.Rotate(offset))
	return sat.NewOrientedBox(center, s.Orientation, half)
}
