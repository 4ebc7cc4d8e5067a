package verletrope

import "math"

// A Vec2 is a simple 2D vector.
// Screen conventions apply: X grows to the right and Y grows downwards.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns u+v.
func (u Vec2) Add(v Vec2) Vec2 {
	return Vec2{u.X + v.X, u.Y + v.Y}
}

// Sub returns u-v.
func (u Vec2) Sub(v Vec2) Vec2 {
	return Vec2{u.X - v.X, u.Y - v.Y}
}

// Scale returns k*u.
func (u Vec2) Scale(k float64) Vec2 {
	return Vec2{k * u.X, k * u.Y}
}

// Dot returns the dot product of u and v.
func (u Vec2) Dot(v Vec2) float64 {
	return u.X*v.X + u.Y*v.Y
}

// Len2 returns the squared length of u.
func (u Vec2) Len2() float64 {
	return u.X*u.X + u.Y*u.Y
}

// Len returns the length of u.
func (u Vec2) Len() float64 {
	return math.Sqrt(u.X*u.X + u.Y*u.Y)
}
