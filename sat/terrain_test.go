package sat

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floorAt(z float32) Triangle {
	return NewTriangle(mgl32.Vec3{-5, -5, z}, mgl32.Vec3{5, -5, z}, mgl32.Vec3{0, 5, z})
}

// footBox is a unit box whose bottom face sits at z.
func footBox(z float32) OrientedBox {
	return NewAxisAlignedBox(mgl32.Vec3{-0.5, -0.5, z}, mgl32.Vec3{0.5, 0.5, z + 1})
}

func TestTriangleBoxCollision_BoxAboveFloor(t *testing.T) {
	tri := floorAt(0)
	box := footBox(0.5)
	assert.False(t, TriangleBoxCollision(&box, &tri).Collided())
}

func TestTriangleBoxCollision_RestingBox(t *testing.T) {
	tri := floorAt(0)
	box := footBox(0)
	assert.False(t, TriangleBoxCollision(&box, &tri).Collided())
}

func TestTriangleBoxCollision_SunkenBox(t *testing.T) {
	tri := floorAt(0)
	box := footBox(-0.7)

	mtv, ok := TriangleBoxCollision(&box, &tri).MTV()
	require.True(t, ok)
	assert.InDelta(t, 0.3, mtv.Len(), 0.001)
	assert.True(t, mtv.Normalize().ApproxEqual(mgl32.Vec3{0, 0, 1}))
}

func TestTriangleBoxCollision_CrossingOutsideTriangle(t *testing.T) {
	tri := NewTriangle(mgl32.Vec3{10, 10, 0}, mgl32.Vec3{12, 10, 0}, mgl32.Vec3{11, 12, 0})
	box := footBox(-0.2)
	assert.False(t, TriangleBoxCollision(&box, &tri).Collided())
}

func TestCheckCollisionTriangles_Merge(t *testing.T) {
	box := footBox(-0.2)
	tris := []Triangle{floorAt(0.1), floorAt(0)}

	deepest := CheckCollisionTriangles(&box, tris, MergeDeepest)
	assert.InDelta(t, 0.3, deepest.Depth(), 1e-4)

	last := CheckCollisionTriangles(&box, tris, MergeLast)
	assert.InDelta(t, 0.2, last.Depth(), 1e-4)

	assert.False(t, CheckCollisionTriangles(&box, nil, MergeDeepest).Collided())
}

func TestTriangle_Plane(t *testing.T) {
	tri := floorAt(2)
	assert.True(t, tri.Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}))
	assert.InDelta(t, -2, tri.D, 1e-6)
	assert.InDelta(t, 0, tri.SignedDistance(mgl32.Vec3{1, 1, 2}), 1e-6)
}

func TestTriangle_ProjectPointZ(t *testing.T) {
	// Plane z = x.
	slope := NewTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 1}, mgl32.Vec3{0, 1, 0})
	p, ok := slope.ProjectPointZ(mgl32.Vec3{0.5, 0.2, 5})
	require.True(t, ok)
	assert.InDelta(t, 0.5, p.Z(), 1e-5)
	assert.Equal(t, float32(0.5), p.X())
	assert.Equal(t, float32(0.2), p.Y())

	wall := NewTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1})
	_, ok = wall.ProjectPointZ(mgl32.Vec3{0.2, 1, 0.2})
	assert.False(t, ok)
}

func TestTriangle_Inside(t *testing.T) {
	tri := NewTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 0, 0}, mgl32.Vec3{0, 4, 0})

	assert.True(t, tri.Inside(mgl32.Vec3{1, 1, 0}))
	assert.True(t, tri.Inside(mgl32.Vec3{2, 0, 0}))
	assert.True(t, tri.Inside(mgl32.Vec3{2, 2, 0}))
	assert.False(t, tri.Inside(mgl32.Vec3{3, 3, 0}))
	assert.False(t, tri.Inside(mgl32.Vec3{-0.1, 1, 0}))
}

func TestTriangle_Footprint(t *testing.T) {
	tri := NewTriangle(mgl32.Vec3{-1, 2, 0}, mgl32.Vec3{3, -4, 1}, mgl32.Vec3{0, 5, 2})
	minX, minY, maxX, maxY := tri.Footprint()
	assert.Equal(t, []float32{-1, -4, 3, 5}, []float32{minX, minY, maxX, maxY})
}

func TestNewTriangle_DegeneratePanics(t *testing.T) {
	require.Panics(t, func() {
		NewTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2})
	})
}

func TestContactMerge_Text(t *testing.T) {
	var m ContactMerge
	require.NoError(t, m.UnmarshalText([]byte("last")))
	assert.Equal(t, MergeLast, m)

	b, err := MergeDeepest.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "deepest", string(b))

	assert.Error(t, m.UnmarshalText([]byte("sum")))
}
