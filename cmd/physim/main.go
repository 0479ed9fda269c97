// physim steps a headless scene of falling and colliding boxes over hilly
// terrain and optionally dumps a top-down picture of the last frame.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/chewxy/math32"
	collide "github.com/gekko3d/gekko-collide"
	"github.com/gekko3d/gekko-collide/debugview"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	configPath := flag.String("config", "", "physics YAML file (defaults when empty)")
	frames := flag.Int("frames", 600, "frames to simulate at 60 Hz")
	entities := flag.Int("entities", 24, "number of dynamic boxes")
	seed := flag.Int64("seed", 1, "spawn seed")
	dump := flag.String("dump", "", "write a PNG of the last frame here")
	thumb := flag.Int("thumb", 0, "downscale the PNG so its longer side fits")
	debug := flag.Bool("debug", false, "log state transitions")
	flag.Parse()

	log := collide.NewDefaultLogger("physim", *debug)

	physics := collide.NewPhysicsWorld()
	if *configPath != "" {
		p, err := collide.LoadConfig(*configPath)
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
		physics = p
	}

	hills := func(x, y float32) float32 {
		return 0.6 * math32.Sin(x/4) * math32.Cos(y/5)
	}
	terrain := collide.NewStaticWorld(collide.Heightfield(32, 32, 1, mgl32.Vec3{-16, -16, 0}, hills), physics)
	log.Infof("terrain %s: %d triangles, root %v", terrain.Id, len(terrain.Triangles), terrain.Index().Root())

	sim := collide.NewSimulation(physics, terrain, log)
	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *entities; i++ {
		pos := mgl32.Vec3{rng.Float32()*24 - 12, rng.Float32()*24 - 12, 2 + rng.Float32()*4}
		s := collide.NewPhysicalState(pos, 1+rng.Float32()*2)
		s.MaxSpeed = 4
		s.Velocity = mgl32.Vec3{rng.Float32()*4 - 2, rng.Float32()*4 - 2, 0}
		sim.Spawn(s, collide.FootHitbox(1, 1, 1.8), collide.CollideAll)
	}
	pillar := collide.NewPhysicalState(mgl32.Vec3{0, 0, hills(0, 0)}, 0)
	sim.Spawn(pillar, collide.FootHitbox(2, 2, 3), collide.CollideBodies)

	const hz = 60
	clock := &collide.Time{Time: time.Unix(0, 0)}
	var report collide.StepReport
	contacts := 0
	for f := 1; f <= *frames; f++ {
		dt := clock.TickAt(clock.Time.Add(time.Second / hz))
		report = sim.Step(dt)
		contacts += len(report.Manifolds)
		if f%hz == 0 {
			log.Infof("t=%ds falling=%d contacts=%d", f/hz, report.Falling, contacts)
			contacts = 0
		}
	}

	if *dump == "" {
		return
	}
	img := debugview.Snapshot(sim, report, 24, "").Render()
	if err := debugview.SavePNG(*dump, debugview.Thumbnail(img, *thumb)); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	log.Infof("wrote %s", *dump)
}
