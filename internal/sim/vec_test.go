package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2_NormalizeZeroIsZero(t *testing.T) {
	n := Vec2{}.Normalize()
	assert.True(t, n.IsZero())
	assert.False(t, math.IsNaN(n.X) || math.IsNaN(n.Y))
	assert.True(t, Vec2{}.SetMag(5).IsZero())
	assert.True(t, V(3, 4).Div(0).IsZero())
}

func TestVec2_Basics(t *testing.T) {
	v := V(3, 4)
	assert.Equal(t, 5.0, v.Mag())
	assert.Equal(t, 25.0, v.MagSq())
	assert.InDelta(t, 1.0, v.Normalize().Mag(), 1e-12)
	assert.Equal(t, V(4, 6), v.Add(V(1, 2)))
	assert.Equal(t, V(2, 2), v.Sub(V(1, 2)))
	assert.Equal(t, V(6, 8), v.Scale(2))
	assert.Equal(t, 11.0, v.Dot(V(1, 2)))
	assert.Equal(t, 5.0, V(0, 0).Dist(v))
}

func TestVec2_LimitAndSetMag(t *testing.T) {
	v := V(30, 40)
	assert.InDelta(t, 2.0, v.Limit(2).Mag(), 1e-12)
	assert.Equal(t, V(0.3, 0.4), V(0.3, 0.4).Limit(2))
	assert.InDelta(t, 7.0, v.SetMag(7).Mag(), 1e-12)
	assert.InDelta(t, v.Heading(), v.SetMag(7).Heading(), 1e-12)
}

func TestVec2_HeadingAndFromAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, V(0, 1).Heading(), 1e-12)
	f := FromAngle(math.Pi, 2)
	assert.InDelta(t, -2, f.X, 1e-12)
	assert.InDelta(t, 0, f.Y, 1e-12)
}
