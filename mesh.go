package collide

import (
	"errors"
	"fmt"

	"github.com/gekko3d/gekko-collide/sat"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrBadIndexBuffer = errors.New("bad index buffer")

// TrianglesFromIndexed builds terrain triangles from a vertex buffer and a
// triangle-list index buffer. Degenerate triangles are dropped.
func TrianglesFromIndexed[I uint16 | uint32](vertices []mgl32.Vec3, indices []I) ([]sat.Triangle, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrBadIndexBuffer, len(indices))
	}
	tris := make([]sat.Triangle, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		var v [3]mgl32.Vec3
		for k := 0; k < 3; k++ {
			idx := int(indices[i+k])
			if idx >= len(vertices) {
				return nil, fmt.Errorf("%w: index %d out of range for %d vertices", ErrBadIndexBuffer, idx, len(vertices))
			}
			v[k] = vertices[idx]
		}
		if sat.Degenerate(v[0], v[1], v[2]) {
			continue
		}
		tris = append(tris, sat.NewTriangle(v[0], v[1], v[2]))
	}
	return tris, nil
}

// Heightfield samples height over a cols x rows grid of square cells
// starting at origin and returns two upward facing triangles per cell.
func Heightfield(cols, rows int, cell float32, origin mgl32.Vec3, height func(x, y float32) float32) []sat.Triangle {
	point := func(i, j int) mgl32.Vec3 {
		x := origin.X() + float32(i)*cell
		y := origin.Y() + float32(j)*cell
		return mgl32.Vec3{x, y, origin.Z() + height(x, y)}
	}

	tris := make([]sat.Triangle, 0, cols*rows*2)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			p00, p10 := point(i, j), point(i+1, j)
			p01, p11 := point(i, j+1), point(i+1, j+1)
			tris = append(tris,
				sat.NewTriangle(p00, p10, p11),
				sat.NewTriangle(p00, p11, p01),
			)
		}
	}
	return tris
}

// FlatGround is a size x size square at height z centered on the origin.
func FlatGround(size, z float32) []sat.Triangle {
	h := size / 2
	return Heightfield(1, 1, size, mgl32.Vec3{-h, -h, z}, func(x, y float32) float32 { return 0 })
}
