package quadtree

// FreeList stores values in a flat slice addressed by integer handles.
// Erased slots are chained into a free list and reused by the next Insert
// before the backing store grows.
type FreeList[T any] struct {
	slots     []freeSlot[T]
	firstFree int
	live      int
}

type freeSlot[T any] struct {
	value T
	next  int
	used  bool
}

func NewFreeList[T any]() *FreeList[T] {
	return &FreeList[T]{firstFree: -1}
}

// Insert stores v and returns its handle.
func (fl *FreeList[T]) Insert(v T) int {
	fl.live++
	if fl.firstFree != -1 {
		idx := fl.firstFree
		fl.firstFree = fl.slots[idx].next
		fl.slots[idx] = freeSlot[T]{value: v, next: -1, used: true}
		return idx
	}
	fl.slots = append(fl.slots, freeSlot[T]{value: v, next: -1, used: true})
	return len(fl.slots) - 1
}

// Erase releases the slot at idx. Erasing a free slot panics.
func (fl *FreeList[T]) Erase(idx int) {
	if !fl.slots[idx].used {
		panic("quadtree: erase of free slot")
	}
	var zero T
	fl.slots[idx] = freeSlot[T]{value: zero, next: fl.firstFree}
	fl.firstFree = idx
	fl.live--
}

// At returns a pointer to the value stored at idx. The pointer is only
// valid until the next Insert.
func (fl *FreeList[T]) At(idx int) *T {
	return &fl.slots[idx].value
}

func (fl *FreeList[T]) Used(idx int) bool {
	return idx >= 0 && idx < len(fl.slots) && fl.slots[idx].used
}

// Len is the number of live values.
func (fl *FreeList[T]) Len() int { return fl.live }

// Cap is the size of the backing store, live or free.
func (fl *FreeList[T]) Cap() int { return len(fl.slots) }

func (fl *FreeList[T]) Clear() {
	fl.slots = fl.slots[:0]
	fl.firstFree = -1
	fl.live = 0
}

// Range calls fn for every live slot in handle order until fn returns false.
func (fl *FreeList[T]) Range(fn func(idx int, v *T) bool) {
	for i := range fl.slots {
		if !fl.slots[i].used {
			continue
		}
		if !fn(i, &fl.slots[i].value) {
			return
		}
	}
}
