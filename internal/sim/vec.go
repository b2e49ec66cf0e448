package sim

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X float64
	Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns a vector of the given magnitude pointing along angle (radians).
func FromAngle(angle, mag float64) Vec2 {
	return Vec2{X: mag * math.Cos(angle), Y: mag * math.Sin(angle)}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Div divides both components by f. Division by zero returns the zero vector.
func (v Vec2) Div(f float64) Vec2 {
	if f == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / f, Y: v.Y / f}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Mag() float64 {
	return math.Sqrt(v.MagSq())
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector in v's direction, or the zero vector when
// v has no length.
func (v Vec2) Normalize() Vec2 {
	m := v.Mag()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / m, Y: v.Y / m}
}

// SetMag rescales v to length m. A zero vector stays zero.
func (v Vec2) SetMag(m float64) Vec2 {
	return v.Normalize().Scale(m)
}

// Limit caps the length of v at max.
func (v Vec2) Limit(max float64) Vec2 {
	if v.MagSq() > max*max {
		return v.SetMag(max)
	}
	return v
}

func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Mag()
}

// Heading is the angle of v in radians, measured from +X toward +Y.
func (v Vec2) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}
