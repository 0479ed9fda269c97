package sat

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// ContactMerge decides how the corrections of several colliding triangles
// combine into one result.
type ContactMerge int

const (
	// MergeDeepest keeps the correction with the largest magnitude.
	MergeDeepest ContactMerge = iota
	// MergeLast keeps the correction of the last colliding triangle.
	MergeLast
)

func (m ContactMerge) String() string {
	switch m {
	case MergeDeepest:
		return "deepest"
	case MergeLast:
		return "last"
	}
	return fmt.Sprintf("ContactMerge(%d)", int(m))
}

func ParseContactMerge(s string) (ContactMerge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "deepest":
		return MergeDeepest, nil
	case "last":
		return MergeLast, nil
	}
	return MergeDeepest, fmt.Errorf("sat: unknown contact merge %q", s)
}

func (m ContactMerge) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ContactMerge) UnmarshalText(b []byte) error {
	v, err := ParseContactMerge(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// TriangleBoxCollision tests the box's twelve edges against the triangle.
// For every edge crossing the plane inside the triangle the correction is
// the shorter of the two endpoint distances to the plane. The largest such
// correction is returned along the triangle normal.
func TriangleBoxCollision(box *OrientedBox, tri *Triangle) Result {
	var best float32
	found := false
	for i := range boxEdges {
		a, b := box.Edge(i)
		da := tri.SignedDistance(a)
		db := tri.SignedDistance(b)
		if (da < 0) == (db < 0) {
			continue
		}

		p := a.Add(b.Sub(a).Mul(da / (da - db)))
		if !tri.Inside(p) {
			continue
		}

		c := math32.Min(math32.Abs(da), math32.Abs(db))
		if !found || c > best {
			best = c
			found = true
		}
	}
	if !found {
		return NoCollision()
	}
	return Collision(tri.Normal.Mul(best))
}

// CheckCollisionTriangles tests the box against each triangle in turn.
// Terrain is not assumed convex, so triangles are tested independently and
// combined according to merge.
func CheckCollisionTriangles(box *OrientedBox, tris []Triangle, merge ContactMerge) Result {
	res := NoCollision()
	for i := range tris {
		r := TriangleBoxCollision(box, &tris[i])
		if !r.Collided() {
			continue
		}
		if merge == MergeLast || !res.Collided() || r.Depth() > res.Depth() {
			res = r
		}
	}
	return res
}
