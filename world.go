package collide

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/gekko3d/gekko-collide/quadtree"
	"github.com/gekko3d/gekko-collide/sat"
	"github.com/google/uuid"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// StaticWorld is the immutable terrain of a scene: its triangles and a
// quadtree over their XY footprints keyed by triangle index. It is built
// once at load time and only read while stepping.
type StaticWorld struct {
	Id        AssetId
	Triangles []sat.Triangle
	index     *quadtree.Quadtree[int]
}

// NewStaticWorld indexes tris. The index root is the union of all
// footprints grown by one unit.
func NewStaticWorld(tris []sat.Triangle, physics *PhysicsWorld) *StaticWorld {
	if physics == nil {
		physics = NewPhysicsWorld()
	}

	root := quadtree.Rect{}
	for i := range tris {
		r := FootprintRect(tris[i].Footprint())
		if i == 0 {
			root = r
		} else {
			root = root.Union(r)
		}
	}
	root.Left--
	root.Top--
	root.Right++
	root.Bottom++

	w := &StaticWorld{
		Id:        makeAssetId(),
		Triangles: tris,
		index: quadtree.New[int](root,
			quadtree.WithMaxElements(physics.QuadMaxElements),
			quadtree.WithMaxDepth(physics.QuadMaxDepth),
		),
	}
	for i := range tris {
		w.index.Insert(i, FootprintRect(tris[i].Footprint()))
	}
	return w
}

// FootprintRect converts float XY bounds to the enclosing integer rect.
func FootprintRect(minX, minY, maxX, maxY float32) quadtree.Rect {
	return quadtree.Rect{
		Left:   int(math32.Floor(minX)),
		Right:  int(math32.Ceil(maxX)),
		Top:    int(math32.Floor(minY)),
		Bottom: int(math32.Ceil(maxY)),
	}
}

func (w *StaticWorld) Index() *quadtree.Quadtree[int] { return w.index }

// Nearby returns the sorted indices of triangles whose footprint overlaps
// the given XY bounds.
func (w *StaticWorld) Nearby(minX, minY, maxX, maxY float32) []int {
	idx := w.index.Query(FootprintRect(minX, minY, maxX, maxY))
	sort.Ints(idx)
	return idx
}

// NearbyBox is Nearby over the XY bounds of box.
func (w *StaticWorld) NearbyBox(box *sat.OrientedBox) []int {
	min, max := box.Bounds()
	return w.Nearby(min.X(), min.Y(), max.X(), max.Y())
}

// Gather appends the triangles at idx to dst.
func (w *StaticWorld) Gather(dst []sat.Triangle, idx []int) []sat.Triangle {
	for _, i := range idx {
		dst = append(dst, w.Triangles[i])
	}
	return dst
}
