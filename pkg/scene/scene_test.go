package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func box(minX, minZ, maxX, maxZ float64) BoundingBox {
	return BoundingBox{Min: Vec3{X: minX, Y: 0, Z: minZ}, Max: Vec3{X: maxX, Y: 1, Z: maxZ}}
}

func TestContainsPointInclusive(t *testing.T) {
	b := box(0, 0, 2, 2)

	assert.True(t, b.ContainsPoint(Vec3{X: 1, Y: 0.5, Z: 1}))
	assert.True(t, b.ContainsPoint(Vec3{X: 0, Y: 0, Z: 0}), "min corner is inside")
	assert.True(t, b.ContainsPoint(Vec3{X: 2, Y: 1, Z: 2}), "max corner is inside")
	assert.False(t, b.ContainsPoint(Vec3{X: 2.01, Y: 0, Z: 1}))
	assert.False(t, b.ContainsPoint(Vec3{X: 1, Y: -0.01, Z: 1}))
}

func TestUnion(t *testing.T) {
	u := box(0, 0, 1, 1).Union(box(-3, 2, 0.5, 5))
	assert.Equal(t, box(-3, 0, 1, 5), u)
}

func TestSizeAndFloor(t *testing.T) {
	b := box(-2, -1, 3, 4)
	assert.Equal(t, Vec3{X: 5, Y: 1, Z: 5}, b.Size())
	assert.Equal(t, 25.0, b.FloorArea())
	assert.Equal(t, -2.0, b.FloorMin().X)
	assert.Equal(t, 4.0, b.FloorMax().Z)
}

func TestIsInverted(t *testing.T) {
	assert.False(t, box(0, 0, 1, 1).IsInverted())
	assert.True(t, box(1, 0, 0, 1).IsInverted())
	assert.False(t, BoundingBox{}.IsInverted(), "zero box is degenerate, not inverted")
}

func TestComputeBoundsSkipsBoxlessObjects(t *testing.T) {
	a := box(0, 0, 1, 1)
	b := box(4, 4, 5, 5)
	got := computeBounds([]Object{{Name: "light"}, {BoundingBox: &a}, {BoundingBox: &b}})
	assert.Equal(t, box(0, 0, 5, 5), got)
}
