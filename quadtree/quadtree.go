package quadtree

import "sort"

const (
	DefaultMaxElements = 6
	DefaultMaxDepth    = 10
)

const branch = -1

// ElementID is the handle of an inserted element. Ids are recycled after Remove.
type ElementID int

// node is a leaf when count >= 0, in which case first is the head of its
// element-node chain (-1 when empty). For a branch, first is the index of
// its four contiguous children.
type node struct {
	first int
	count int
}

type eltNode struct {
	next int
	elt  int
}

type element[T any] struct {
	rect    Rect
	payload T
}

// Quadtree is a loose quadtree over a fixed integer root rectangle. Elements
// straddling a midline are stored in every child they overlap.
type Quadtree[T any] struct {
	root        Rect
	maxElements int
	maxDepth    int

	nodes    []node
	freeNode int

	elts     *FreeList[element[T]]
	eltNodes *FreeList[eltNode]
}

type Option func(*options)

type options struct {
	maxElements int
	maxDepth    int
}

// WithMaxElements sets the element count a leaf may hold before it splits.
func WithMaxElements(n int) Option {
	return func(o *options) { o.maxElements = n }
}

func WithMaxDepth(d int) Option {
	return func(o *options) { o.maxDepth = d }
}

func New[T any](root Rect, opts ...Option) *Quadtree[T] {
	if !root.Valid() {
		panic("quadtree: invalid root rect " + root.String())
	}
	o := options{maxElements: DefaultMaxElements, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxElements < 1 {
		o.maxElements = 1
	}
	return &Quadtree[T]{
		root:        root,
		maxElements: o.maxElements,
		maxDepth:    o.maxDepth,
		nodes:       []node{{first: -1, count: 0}},
		freeNode:    -1,
		elts:        NewFreeList[element[T]](),
		eltNodes:    NewFreeList[eltNode](),
	}
}

func (q *Quadtree[T]) Root() Rect { return q.root }

// Len is the number of stored elements.
func (q *Quadtree[T]) Len() int { return q.elts.Len() }

// Insert stores payload under rect. It reports false and stores nothing when
// rect lies entirely outside the root.
func (q *Quadtree[T]) Insert(payload T, rect Rect) (ElementID, bool) {
	if !rect.Valid() || !q.root.Intersects(rect) {
		return -1, false
	}
	id := q.elts.Insert(element[T]{rect: rect, payload: payload})
	q.insert(0, 0, q.root, id, rect)
	return ElementID(id), true
}

func (q *Quadtree[T]) insert(ni, depth int, nr Rect, elt int, rect Rect) {
	if q.nodes[ni].count == branch {
		first := q.nodes[ni].first
		for i, cr := range nr.quadrants() {
			if cr.Intersects(rect) {
				q.insert(first+i, depth+1, cr, elt, rect)
			}
		}
		return
	}

	n := &q.nodes[ni]
	n.first = q.eltNodes.Insert(eltNode{next: n.first, elt: elt})
	n.count++
	if n.count > q.maxElements && depth < q.maxDepth {
		q.split(ni, depth, nr)
	}
}

// split turns leaf ni into a branch and re-inserts its elements into the
// children they overlap.
func (q *Quadtree[T]) split(ni, depth int, nr Rect) {
	var moved []int
	for en := q.nodes[ni].first; en != -1; {
		e := q.eltNodes.At(en)
		next := e.next
		moved = append(moved, e.elt)
		q.eltNodes.Erase(en)
		en = next
	}

	first := q.allocChildren()
	q.nodes[ni] = node{first: first, count: branch}
	for _, elt := range moved {
		q.insert(ni, depth, nr, elt, q.elts.At(elt).rect)
	}
}

func (q *Quadtree[T]) allocChildren() int {
	if q.freeNode != -1 {
		first := q.freeNode
		q.freeNode = q.nodes[first].first
		for i := 0; i < 4; i++ {
			q.nodes[first+i] = node{first: -1, count: 0}
		}
		return first
	}
	first := len(q.nodes)
	for i := 0; i < 4; i++ {
		q.nodes = append(q.nodes, node{first: -1, count: 0})
	}
	return first
}

// Remove deletes the element with the given id. Removing an unknown id is a no-op.
func (q *Quadtree[T]) Remove(id ElementID) {
	elt := int(id)
	if !q.elts.Used(elt) {
		return
	}
	rect := q.elts.At(elt).rect
	q.findLeaves(0, q.root, rect, func(ni int, _ Rect) {
		prev := -1
		for en := q.nodes[ni].first; en != -1; {
			e := q.eltNodes.At(en)
			next := e.next
			if e.elt == elt {
				if prev == -1 {
					q.nodes[ni].first = next
				} else {
					q.eltNodes.At(prev).next = next
				}
				q.eltNodes.Erase(en)
				q.nodes[ni].count--
				return
			}
			prev = en
			en = next
		}
	})
	q.elts.Erase(elt)
}

// Cleanup collapses branches whose children are all empty leaves and
// recycles their node blocks.
func (q *Quadtree[T]) Cleanup() {
	q.collapse(0)
}

func (q *Quadtree[T]) collapse(ni int) bool {
	n := q.nodes[ni]
	if n.count != branch {
		return n.count == 0
	}
	empty := true
	for i := 0; i < 4; i++ {
		if !q.collapse(n.first + i) {
			empty = false
		}
	}
	if !empty {
		return false
	}
	q.nodes[n.first].first = q.freeNode
	q.freeNode = n.first
	q.nodes[ni] = node{first: -1, count: 0}
	return true
}

// Query returns every payload whose rect overlaps r, each once, ordered by
// element id.
func (q *Quadtree[T]) Query(r Rect) []T {
	ids := q.QueryIDs(r)
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = q.elts.At(int(id)).payload
	}
	return out
}

// QueryPoint returns every payload whose rect contains p.
func (q *Quadtree[T]) QueryPoint(p Point) []T {
	return q.Query(PointRect(p))
}

// QueryIDs is Query returning element ids instead of payloads.
func (q *Quadtree[T]) QueryIDs(r Rect) []ElementID {
	if !r.Valid() || !q.root.Intersects(r) {
		return nil
	}
	seen := make(map[int]struct{})
	var ids []ElementID
	q.findLeaves(0, q.root, r, func(ni int, _ Rect) {
		for en := q.nodes[ni].first; en != -1; {
			e := q.eltNodes.At(en)
			if _, ok := seen[e.elt]; !ok && q.elts.At(e.elt).rect.Intersects(r) {
				seen[e.elt] = struct{}{}
				ids = append(ids, ElementID(e.elt))
			}
			en = e.next
		}
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Payload returns the payload and rect stored for id.
func (q *Quadtree[T]) Payload(id ElementID) (T, Rect, bool) {
	if !q.elts.Used(int(id)) {
		var zero T
		return zero, Rect{}, false
	}
	e := q.elts.At(int(id))
	return e.payload, e.rect, true
}

func (q *Quadtree[T]) findLeaves(ni int, nr Rect, r Rect, fn func(ni int, nr Rect)) {
	n := q.nodes[ni]
	if n.count != branch {
		fn(ni, nr)
		return
	}
	for i, cr := range nr.quadrants() {
		if cr.Intersects(r) {
			q.findLeaves(n.first+i, cr, r, fn)
		}
	}
}

// Walk visits every node depth first. count is the element count of a leaf
// and -1 for a branch.
func (q *Quadtree[T]) Walk(fn func(r Rect, depth int, count int)) {
	q.walk(0, q.root, 0, fn)
}

func (q *Quadtree[T]) walk(ni int, nr Rect, depth int, fn func(Rect, int, int)) {
	n := q.nodes[ni]
	fn(nr, depth, n.count)
	if n.count != branch {
		return
	}
	for i, cr := range nr.quadrants() {
		q.walk(n.first+i, cr, depth+1, fn)
	}
}
