package sat

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBoxAt(center mgl32.Vec3) OrientedBox {
	return NewOrientedBox(center, mgl32.QuatIdent(), mgl32.Vec3{0.5, 0.5, 0.5})
}

func randVec(rng *rand.Rand, scale float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(rng.Float32()*2 - 1) * scale,
		(rng.Float32()*2 - 1) * scale,
		(rng.Float32()*2 - 1) * scale,
	}
}

func randHalf(rng *rand.Rand) mgl32.Vec3 {
	return mgl32.Vec3{0.1 + rng.Float32(), 0.1 + rng.Float32(), 0.1 + rng.Float32()}
}

func TestCheckCollision_SeparatedAxisAlignedPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		ha, hb := randHalf(rng), randHalf(rng)
		ca := randVec(rng, 10)
		cb := ca.Add(randVec(rng, 1))

		k := rng.Intn(3)
		gap := ha[k] + hb[k] + 0.01 + rng.Float32()
		if rng.Intn(2) == 0 {
			gap = -gap
		}
		cb[k] = ca[k] + gap

		a := NewOrientedBox(ca, mgl32.QuatIdent(), ha)
		b := NewOrientedBox(cb, mgl32.QuatIdent(), hb)
		assert.False(t, CheckCollision(&a, &b).Collided(), "pair %d", i)
	}
}

func TestCheckCollision_MTVSeparates(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	hits := 0
	for i := 0; i < 500; i++ {
		rotA := mgl32.QuatRotate(rng.Float32()*6.28, randVec(rng, 1).Add(mgl32.Vec3{0, 0, 2}).Normalize())
		rotB := mgl32.QuatRotate(rng.Float32()*6.28, randVec(rng, 1).Add(mgl32.Vec3{2, 0, 0}).Normalize())
		a := NewOrientedBox(randVec(rng, 0.5), rotA, randHalf(rng))
		b := NewOrientedBox(randVec(rng, 0.5), rotB, randHalf(rng))

		res := CheckCollision(&a, &b)
		mtv, ok := res.MTV()
		if !ok {
			continue
		}
		hits++

		moved := a
		moved.Translate(mtv)
		assert.False(t, CheckCollision(&moved, &b).Collided(), "pair %d still collides after %v", i, res)

		movedB := b
		movedB.Translate(mtv.Mul(-1))
		assert.False(t, CheckCollision(&a, &movedB).Collided(), "pair %d still collides after moving b", i)
	}
	require.Greater(t, hits, 100)
}

func TestCheckCollision_ShallowOverlapAlongX(t *testing.T) {
	a := unitBoxAt(mgl32.Vec3{0, 0, 0})
	b := unitBoxAt(mgl32.Vec3{0.9, 0, 0})

	mtv, ok := CheckCollision(&a, &b).MTV()
	require.True(t, ok)

	// b escapes along +X, a along -X.
	escapeB := mtv.Mul(-1)
	assert.Greater(t, escapeB.Normalize().Dot(mgl32.Vec3{1, 0, 0}), float32(0.99))
	assert.Less(t, mtv.Len(), float32(0.2))
	assert.InDelta(t, -0.1, mtv.X(), 1e-5)
}

func TestCheckCollision_TouchingIsNotACollision(t *testing.T) {
	a := unitBoxAt(mgl32.Vec3{0, 0, 0})
	b := unitBoxAt(mgl32.Vec3{1, 0, 0})
	assert.False(t, CheckCollision(&a, &b).Collided())
}

func TestCheckCollision_RotatedBox(t *testing.T) {
	a := unitBoxAt(mgl32.Vec3{0, 0, 0})
	// A box turned 45 degrees about Z reaches sqrt(2)/2 along X.
	rot := mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 0, 1})
	b := NewOrientedBox(mgl32.Vec3{1.1, 0, 0}, rot, mgl32.Vec3{0.5, 0.5, 0.5})

	res := CheckCollision(&a, &b)
	mtv, ok := res.MTV()
	require.True(t, ok)
	assert.Less(t, mtv.X(), float32(0))

	c := NewOrientedBox(mgl32.Vec3{1.25, 0, 0}, rot, mgl32.Vec3{0.5, 0.5, 0.5})
	assert.False(t, CheckCollision(&a, &c).Collided())
}

func TestOrientedBox_Layout(t *testing.T) {
	b := NewAxisAlignedBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 4, 6})

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, b.Center())
	for i := 0; i < 4; i++ {
		assert.Equal(t, float32(0), b.V[i].Z())
		assert.Equal(t, float32(6), b.V[i+4].Z())
		assert.Equal(t, b.V[i].X(), b.V[i+4].X())
		assert.Equal(t, b.V[i].Y(), b.V[i+4].Y())
	}

	axes := b.Axes()
	assert.True(t, axes[0].ApproxEqual(mgl32.Vec3{1, 0, 0}))
	assert.True(t, axes[1].ApproxEqual(mgl32.Vec3{0, 1, 0}))
	assert.True(t, axes[2].ApproxEqual(mgl32.Vec3{0, 0, 1}))

	min, max := b.Bounds()
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, min)
	assert.Equal(t, mgl32.Vec3{2, 4, 6}, max)
}

func TestOrientedBox_DegenerateExtentsPanic(t *testing.T) {
	require.Panics(t, func() {
		NewOrientedBox(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 0, 1})
	})
}

func TestResult(t *testing.T) {
	none := NoCollision()
	_, ok := none.MTV()
	assert.False(t, ok)
	assert.Equal(t, float32(0), none.Depth())
	assert.Equal(t, "NoCollision", none.String())

	hit := Collision(mgl32.Vec3{0, 3, 4})
	assert.True(t, hit.Collided())
	assert.InDelta(t, 5, hit.Depth(), 1e-6)
}
