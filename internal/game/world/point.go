package world

import (
	"fmt"
	"math"
)

// Point is an integer coordinate in a dungeon's 3D grid.
//
// Points are values: storing one always stores a copy.
type Point struct {
	X, Y, Z int
}

// Pt is shorthand for Point{X: x, Y: y, Z: z}.
func Pt(x, y, z int) Point {
	return Point{X: x, Y: y, Z: z}
}

// IsValid reports whether p may address a square. A point is invalid when any
// component is negative or when all three components are equal.
func (p Point) IsValid() bool {
	if p.X < 0 || p.Y < 0 || p.Z < 0 {
		return false
	}
	return !(p.X == p.Y && p.Y == p.Z)
}

// IsNonNegative reports whether no component of p is negative.
func (p Point) IsNonNegative() bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0
}

// Add returns the component-wise sum p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	d := p.Sub(q)
	return math.Sqrt(float64(d.X*d.X + d.Y*d.Y + d.Z*d.Z))
}

func (p Point) axis(i int) int {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// String renders p as "(x, y, z)".
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}
