package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlmostEqual(t *testing.T) {
	a := Point{X: 1, Y: 1}
	b := Point{X: 1 + 1e-12, Y: 1 - 1e-12}
	c := Point{X: 1.1, Y: 1}
	assert.True(t, a.AlmostEqual(b))
	assert.False(t, a.AlmostEqual(c))
}

func TestLineSharesEndpoint(t *testing.T) {
	a := Line{Start: 1, End: 2}
	b := Line{Start: 2, End: 3}
	c := Line{Start: 4, End: 5}

	shared, ok := a.SharesEndpoint(b)
	assert.True(t, ok)
	assert.Equal(t, PointID(2), shared)

	_, ok = a.SharesEndpoint(c)
	assert.False(t, ok)
}

func TestArcDegenerate(t *testing.T) {
	a := Arc{Center: 1, Start: 2, End: 2}
	b := Arc{Center: 1, Start: 2, End: 3}
	assert.True(t, a.Degenerate())
	assert.False(t, b.Degenerate())
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.0))
	assert.False(t, IsFinite(1.0/zero()))
	assert.False(t, IsFinite(zero()/zero()))
}

func zero() float64 { return 0 }
