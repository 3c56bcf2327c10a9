package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollide(t *testing.T) {
	size := Vec2{X: 10, Y: 10}

	tests := []struct {
		name string
		a    Vec2
		hit  bool
		side Collision
	}{
		{name: "far away", a: Vec2{X: 100, Y: 0}, hit: false},
		{name: "touching edge", a: Vec2{X: -10, Y: 0}, hit: false},
		{name: "overlap from left", a: Vec2{X: -8, Y: 0}, hit: true, side: Left},
		{name: "overlap from right", a: Vec2{X: 8, Y: 0}, hit: true, side: Right},
		{name: "overlap from below", a: Vec2{X: 0, Y: -8}, hit: true, side: Bottom},
		{name: "overlap from above", a: Vec2{X: 0, Y: 8}, hit: true, side: Top},
		{name: "same box", a: Vec2{}, hit: true, side: Inside},
		{name: "corner shallow in y", a: Vec2{X: -5, Y: 9}, hit: true, side: Top},
		{name: "corner shallow in x", a: Vec2{X: -9, Y: 5}, hit: true, side: Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, hit := Collide(tt.a, size, Vec2{}, size)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.Equal(t, tt.side, side, "got %s", side)
			}
		})
	}
}

func TestCollideSmallInsideLarge(t *testing.T) {
	side, hit := Collide(Vec2{X: 1, Y: 1}, Vec2{X: 2, Y: 2}, Vec2{}, Vec2{X: 50, Y: 50})
	assert.True(t, hit)
	assert.Equal(t, Inside, side)
}

func TestRect(t *testing.T) {
	r := Rect{Center: Vec2{X: 5, Y: 5}, Size: Vec2{X: 10, Y: 4}}

	assert.Equal(t, Vec2{X: 0, Y: 3}, r.Min())
	assert.Equal(t, Vec2{X: 10, Y: 7}, r.Max())
	assert.True(t, r.Contains(Vec2{X: 10, Y: 7}))
	assert.False(t, r.Contains(Vec2{X: 10.5, Y: 5}))
}

func TestVec2(t *testing.T) {
	v := Vec2{X: 1, Y: 2}
	assert.Equal(t, Vec2{X: 3, Y: 5}, v.Add(Vec2{X: 2, Y: 3}))
	assert.Equal(t, Vec2{X: 0, Y: 1}, v.Sub(Vec2{X: 1, Y: 1}))
	assert.Equal(t, Vec2{X: 2, Y: 4}, v.Scale(2))
}
