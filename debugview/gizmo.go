package debugview

import (
	"github.com/gekko3d/gekko-collide/quadtree"
	"github.com/gekko3d/gekko-collide/sat"
	"github.com/go-gl/mathgl/mgl32"
)

type GizmoType int

const (
	GizmoLine GizmoType = iota
	GizmoPolygon
	GizmoLabel
)

// Gizmo is one top-down overlay shape. Only the X and Y of Points are drawn.
type Gizmo struct {
	Type  GizmoType
	Color [4]float32

	// Line: start and end. Polygon: the outline in order. Label: the
	// baseline origin.
	Points []mgl32.Vec3
	Filled bool
	Width  float32 // stroke width in pixels, default 1
	Text   string
}

func NewGizmoLine(start, end mgl32.Vec3, color [4]float32) Gizmo {
	return Gizmo{
		Type:   GizmoLine,
		Points: []mgl32.Vec3{start, end},
		Color:  color,
		Width:  1,
	}
}

// NewGizmoRect outlines an index rect.
func NewGizmoRect(r quadtree.Rect, color [4]float32) Gizmo {
	l, t := float32(r.Left), float32(r.Top)
	rt, b := float32(r.Right), float32(r.Bottom)
	return Gizmo{
		Type:   GizmoPolygon,
		Points: []mgl32.Vec3{{l, t, 0}, {rt, t, 0}, {rt, b, 0}, {l, b, 0}},
		Color:  color,
		Width:  1,
	}
}

func NewGizmoTriangle(tri *sat.Triangle, color [4]float32, filled bool) Gizmo {
	return Gizmo{
		Type:   GizmoPolygon,
		Points: []mgl32.Vec3{tri.V[0], tri.V[1], tri.V[2]},
		Color:  color,
		Filled: filled,
		Width:  1,
	}
}

// NewGizmoBox outlines the bottom face of box, its footprint for boxes that
// only yaw.
func NewGizmoBox(box *sat.OrientedBox, color [4]float32) Gizmo {
	f := box.BottomFace()
	return Gizmo{
		Type:   GizmoPolygon,
		Points: f[:],
		Color:  color,
		Width:  2,
	}
}

func NewGizmoLabel(at mgl32.Vec3, text string, color [4]float32) Gizmo {
	return Gizmo{
		Type:   GizmoLabel,
		Points: []mgl32.Vec3{at},
		Color:  color,
		Text:   text,
	}
}
