package debugview

import (
	"fmt"

	"github.com/chewxy/math32"
	collide "github.com/gekko3d/gekko-collide"
	"github.com/gekko3d/gekko-collide/quadtree"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ColorNode     = [4]float32{0.3, 0.35, 0.45, 1}
	ColorTerrain  = [4]float32{0.2, 0.5, 0.25, 1}
	ColorGrounded = [4]float32{0.95, 0.85, 0.2, 1}
	ColorFalling  = [4]float32{0.95, 0.3, 0.25, 1}
	ColorImmobile = [4]float32{0.6, 0.6, 0.6, 1}
	ColorContact  = [4]float32{0.3, 0.8, 1, 1}
)

// QuadtreeGizmos outlines every leaf of q. Leaves holding elements are
// brighter.
func QuadtreeGizmos[T any](q *quadtree.Quadtree[T], color [4]float32) []Gizmo {
	var out []Gizmo
	q.Walk(func(r quadtree.Rect, depth, count int) {
		if count < 0 {
			return
		}
		c := color
		if count == 0 {
			c[3] *= 0.4
		}
		out = append(out, NewGizmoRect(r, c))
	})
	return out
}

// TerrainGizmos fills each triangle shaded by how level it is.
func TerrainGizmos(w *collide.StaticWorld) []Gizmo {
	out := make([]Gizmo, 0, len(w.Triangles))
	for i := range w.Triangles {
		tri := &w.Triangles[i]
		shade := 0.35 + 0.65*math32.Abs(tri.Normal.Z())
		c := ColorTerrain
		for k := 0; k < 3; k++ {
			c[k] *= shade
		}
		out = append(out, NewGizmoTriangle(tri, c, true))
	}
	return out
}

// EntityGizmos draws each entity's hitbox footprint, colored by motion
// state, and a facing tick.
func EntityGizmos(sim *collide.Simulation) []Gizmo {
	var out []Gizmo
	for _, e := range sim.Entities {
		box := e.Hitbox.WorldBox(e.State)
		c := ColorGrounded
		switch {
		case e.State.Immovable():
			c = ColorImmobile
		case e.State.Falling:
			c = ColorFalling
		}
		center := box.Center()
		out = append(out,
			NewGizmoBox(&box, c),
			NewGizmoLine(center, center.Add(e.State.Facing.Mul(0.75)), c),
		)
	}
	return out
}

// ContactGizmos draws the normal of each manifold in report from body A.
func ContactGizmos(sim *collide.Simulation, report collide.StepReport) []Gizmo {
	var out []Gizmo
	for _, m := range report.Manifolds {
		if m.A >= len(report.Bodies) {
			continue
		}
		a := sim.Entity(report.Bodies[m.A])
		if a == nil {
			continue
		}
		from := a.State.Position
		out = append(out, NewGizmoLine(from, from.Add(m.Normal.Mul(1+m.Penetration*10)), ColorContact))
	}
	return out
}

// Snapshot frames the terrain index root and draws the whole scene with a
// caption in the top left corner.
func Snapshot(sim *collide.Simulation, report collide.StepReport, scale float32, caption string) *Canvas {
	var c *Canvas
	if sim.Terrain != nil {
		r := sim.Terrain.Index().Root()
		c = NewCanvas(float32(r.Left), float32(r.Top), float32(r.Right), float32(r.Bottom), scale)
		c.Add(TerrainGizmos(sim.Terrain)...)
		c.Add(QuadtreeGizmos(sim.Terrain.Index(), ColorNode)...)
	} else {
		c = NewCanvas(-10, -10, 10, 10, scale)
	}
	c.Add(EntityGizmos(sim)...)
	c.Add(ContactGizmos(sim, report)...)

	if caption == "" {
		caption = fmt.Sprintf("%d entities, %d falling, %d contacts", len(sim.Entities), report.Falling, len(report.Manifolds))
	}
	// One Face7x13 line below the top edge.
	c.Add(NewGizmoLabel(mgl32.Vec3{c.MinX + 4/scale, c.MaxY - 13/scale, 0}, caption, [4]float32{1, 1, 1, 1}))
	return c
}
