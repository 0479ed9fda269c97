package collide

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/gekko3d/gekko-collide/sat"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type EntityId string

func makeEntityId() EntityId {
	return EntityId(uuid.NewString())
}

// CollisionMask selects the resolution passes an entity takes part in.
type CollisionMask uint8

const (
	CollideTerrain CollisionMask = 1 << iota
	CollideBodies

	CollideAll = CollideTerrain | CollideBodies
)

type Entity struct {
	Id     EntityId
	State  *PhysicalState
	Hitbox Hitbox
	Mask   CollisionMask
}

// StepReport is what one Step produced, for hit reactions and animation.
type StepReport struct {
	Manifolds []Manifold
	Terrain   map[EntityId]sat.Result
	Bodies    []EntityId // index space of Manifold.A and Manifold.B
	Falling   int
}

// Simulation owns the entity list of a scene and runs one physics step per
// frame: integrate, impulse pass, movement pass. It is not safe for
// concurrent use.
type Simulation struct {
	Physics  *PhysicsWorld
	Terrain  *StaticWorld
	Movement *MovementResolver
	Impulse  *ImpulseResolver
	Entities []*Entity

	log Logger
}

func NewSimulation(physics *PhysicsWorld, terrain *StaticWorld, log Logger) *Simulation {
	if physics == nil {
		physics = NewPhysicsWorld()
	}
	log = orNop(log)
	return &Simulation{
		Physics:  physics,
		Terrain:  terrain,
		Movement: NewMovementResolver(terrain, physics, log),
		Impulse:  NewImpulseResolver(physics, log),
		log:      log,
	}
}

func (sim *Simulation) Spawn(state *PhysicalState, hitbox Hitbox, mask CollisionMask) *Entity {
	e := &Entity{Id: makeEntityId(), State: state, Hitbox: hitbox, Mask: mask}
	sim.Entities = append(sim.Entities, e)
	return e
}

func (sim *Simulation) Despawn(id EntityId) bool {
	for i, e := range sim.Entities {
		if e.Id == id {
			sim.Entities = append(sim.Entities[:i], sim.Entities[i+1:]...)
			return true
		}
	}
	return false
}

func (sim *Simulation) Entity(id EntityId) *Entity {
	for _, e := range sim.Entities {
		if e.Id == id {
			return e
		}
	}
	return nil
}

// Step advances the scene by dt. Steps with dt <= 0 or above MaxDt are
// dropped and return an empty report.
func (sim *Simulation) Step(dt time.Duration) StepReport {
	report := StepReport{Terrain: make(map[EntityId]sat.Result)}
	if dt <= 0 || dt > sim.Physics.MaxDt {
		sim.log.Debugf("step skipped, dt=%v", dt)
		return report
	}
	secs := float32(dt.Seconds())

	for _, e := range sim.Entities {
		sim.integrate(e.State, e.Mask, secs)
	}

	boxes := make([]sat.OrientedBox, len(sim.Entities))
	for i, e := range sim.Entities {
		boxes[i] = e.Hitbox.WorldBox(e.State)
	}

	var bodies []Body
	var owners []int
	for i, e := range sim.Entities {
		if e.Mask&CollideBodies != 0 {
			bodies = append(bodies, Body{State: e.State, Box: boxes[i]})
			owners = append(owners, i)
		}
	}
	report.Manifolds = sim.Impulse.Resolve(bodies)
	for k, i := range owners {
		boxes[i] = bodies[k].Box
		report.Bodies = append(report.Bodies, sim.Entities[i].Id)
	}

	for i, e := range sim.Entities {
		if e.Mask&CollideTerrain == 0 {
			continue
		}
		report.Terrain[e.Id] = sim.Movement.Resolve(e.State, &boxes[i])
		if e.State.Falling {
			report.Falling++
		}
	}
	return report
}

// integrate applies gravity while falling, clamps horizontal speed to
// MaxSpeed and moves the entity.
func (sim *Simulation) integrate(s *PhysicalState, mask CollisionMask, dt float32) {
	if s.Falling && mask&CollideTerrain != 0 && !s.Immovable() {
		s.Velocity = s.Velocity.Add(sim.Physics.Gravity.Mul(dt))
	}

	if s.MaxSpeed > 0 {
		h := math32.Hypot(s.Velocity.X(), s.Velocity.Y())
		if h > s.MaxSpeed {
			k := s.MaxSpeed / h
			s.Velocity[0] *= k
			s.Velocity[1] *= k
		}
	}

	disp := s.Velocity.Mul(dt)
	if math32.IsNaN(disp.Len()) || math32.IsInf(disp.Len(), 0) {
		sim.log.Warnf("non-finite velocity %v reset", s.Velocity)
		s.Velocity = mgl32.Vec3{}
		return
	}
	s.Position = s.Position.Add(disp)
	s.Face(s.Velocity)
}
