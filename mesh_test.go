package collide

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrianglesFromIndexed(t *testing.T) {
	vertices := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {2, 0, 0}}
	indices := []uint16{0, 1, 2, 0, 2, 3, 0, 1, 4}

	tris, err := TrianglesFromIndexed(vertices, indices)
	require.NoError(t, err)
	// The last triangle is collinear and dropped.
	require.Len(t, tris, 2)
	for _, tri := range tris {
		assert.True(t, tri.Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}))
	}
}

func TestTrianglesFromIndexed_BadBuffers(t *testing.T) {
	vertices := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}

	_, err := TrianglesFromIndexed(vertices, []uint32{0, 1})
	assert.ErrorIs(t, err, ErrBadIndexBuffer)

	_, err = TrianglesFromIndexed(vertices, []uint32{0, 1, 3})
	assert.ErrorIs(t, err, ErrBadIndexBuffer)
}

func TestHeightfield(t *testing.T) {
	height := func(x, y float32) float32 { return x + 2*y }
	tris := Heightfield(2, 3, 0.5, mgl32.Vec3{1, 1, 0.25}, height)

	require.Len(t, tris, 12)
	for _, tri := range tris {
		assert.Greater(t, tri.Normal.Z(), float32(0))
		for _, v := range tri.V {
			assert.InDelta(t, 0.25+height(v.X(), v.Y()), v.Z(), 1e-5)
			assert.GreaterOrEqual(t, v.X(), float32(1))
			assert.LessOrEqual(t, v.X(), float32(2))
			assert.LessOrEqual(t, v.Y(), float32(2.5))
		}
	}
}

func TestFlatGround(t *testing.T) {
	tris := FlatGround(4, -1)
	require.Len(t, tris, 2)

	p, ok := tris[0].ProjectPointZ(mgl32.Vec3{1.5, 0.5, 3})
	require.True(t, ok)
	assert.InDelta(t, -1, p.Z(), 1e-6)
	minX, minY, _, _ := tris[1].Footprint()
	assert.Equal(t, float32(-2), minX)
	assert.Equal(t, float32(-2), minY)
}
