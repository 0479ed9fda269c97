package collide

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/gekko3d/gekko-collide/sat"
	"github.com/go-gl/mathgl/mgl32"
)

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func BoxAABB(b *sat.OrientedBox) AABB {
	min, max := b.Bounds()
	return AABB{Min: min, Max: max}
}

func (a AABB) Overlaps(o AABB) bool {
	return a.Min.X() <= o.Max.X() && o.Min.X() <= a.Max.X() &&
		a.Min.Y() <= o.Max.Y() && o.Min.Y() <= a.Max.Y() &&
		a.Min.Z() <= o.Max.Z() && o.Min.Z() <= a.Max.Z()
}

// SpatialHashGrid buckets dynamic bodies by the uniform cells their AABB
// touches. Unlike the terrain quadtree it is rebuilt every step.
type SpatialHashGrid struct {
	cellSize float32
	cells    map[uint64][]int
}

func NewSpatialHashGrid(cellSize float32) *SpatialHashGrid {
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]int),
	}
}

func (grid *SpatialHashGrid) Clear() {
	clear(grid.cells)
}

func (grid *SpatialHashGrid) Insert(id int, aabb AABB) {
	grid.forCells(aabb, func(key uint64) {
		grid.cells[key] = append(grid.cells[key], id)
	})
}

// QueryAABB returns the ids sharing a cell with aabb, each once.
func (grid *SpatialHashGrid) QueryAABB(aabb AABB) []int {
	unique := make(map[int]struct{})
	var results []int
	grid.forCells(aabb, func(key uint64) {
		for _, id := range grid.cells[key] {
			if _, ok := unique[id]; !ok {
				unique[id] = struct{}{}
				results = append(results, id)
			}
		}
	})
	return results
}

// Pairs rebuilds the grid from boxes and returns every index pair (i<j)
// whose AABBs overlap, sorted.
func (grid *SpatialHashGrid) Pairs(boxes []AABB) [][2]int {
	grid.Clear()
	for i, b := range boxes {
		grid.Insert(i, b)
	}

	var pairs [][2]int
	for i, b := range boxes {
		for _, j := range grid.QueryAABB(b) {
			if j > i && b.Overlaps(boxes[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a][0] != pairs[b][0] {
			return pairs[a][0] < pairs[b][0]
		}
		return pairs[a][1] < pairs[b][1]
	})
	return pairs
}

func (grid *SpatialHashGrid) forCells(aabb AABB, fn func(key uint64)) {
	minX, maxX := grid.getCellIndex(aabb.Min.X()), grid.getCellIndex(aabb.Max.X())
	minY, maxY := grid.getCellIndex(aabb.Min.Y()), grid.getCellIndex(aabb.Max.Y())
	minZ, maxZ := grid.getCellIndex(aabb.Min.Z()), grid.getCellIndex(aabb.Max.Z())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				fn(grid.hashKey(x, y, z))
			}
		}
	}
}

func (grid *SpatialHashGrid) getCellIndex(pos float32) int {
	return int(math32.Floor(pos / grid.cellSize))
}

// Colliding keys only cost extra candidates.
func (grid *SpatialHashGrid) hashKey(x, y, z int) uint64 {
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	return uint64(x*p1 ^ y*p2 ^ z*p3)
}
