package quadtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeList_InsertReusesErasedSlot(t *testing.T) {
	fl := NewFreeList[string]()

	a := fl.Insert("a")
	b := fl.Insert("b")
	c := fl.Insert("c")
	assert.Equal(t, []int{0, 1, 2}, []int{a, b, c})
	assert.Equal(t, 3, fl.Len())

	fl.Erase(b)
	assert.Equal(t, 2, fl.Len())
	assert.False(t, fl.Used(b))

	// The freed slot is handed out before the store grows.
	d := fl.Insert("d")
	assert.Equal(t, b, d)
	assert.Equal(t, "d", *fl.At(d))
	assert.Equal(t, 3, fl.Cap())
}

func TestFreeList_EraseChainIsLIFO(t *testing.T) {
	fl := NewFreeList[int]()
	for i := 0; i < 5; i++ {
		fl.Insert(i)
	}
	fl.Erase(1)
	fl.Erase(3)

	assert.Equal(t, 3, fl.Insert(30))
	assert.Equal(t, 1, fl.Insert(10))
	assert.Equal(t, 5, fl.Insert(50))
}

func TestFreeList_RangeSkipsFreeSlots(t *testing.T) {
	fl := NewFreeList[int]()
	for i := 0; i < 4; i++ {
		fl.Insert(i * 10)
	}
	fl.Erase(2)

	var seen []int
	fl.Range(func(idx int, v *int) bool {
		seen = append(seen, *v)
		return true
	})
	assert.Equal(t, []int{0, 10, 30}, seen)
}

func TestFreeList_DoubleErasePanics(t *testing.T) {
	fl := NewFreeList[int]()
	idx := fl.Insert(1)
	fl.Erase(idx)
	require.Panics(t, func() { fl.Erase(idx) })
}

func TestFreeList_Clear(t *testing.T) {
	fl := NewFreeList[int]()
	fl.Insert(1)
	fl.Insert(2)
	fl.Erase(0)
	fl.Clear()

	assert.Equal(t, 0, fl.Len())
	assert.Equal(t, 0, fl.Insert(7))
}
