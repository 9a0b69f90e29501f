package geom

import (
	"fmt"
	"math"
)

// Vec is a cell coordinate on the puzzle grid. Y is height: floor tiles sit
// at y=0 and dice rest at y=1.
type Vec struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

var (
	Zero  = Vec{}
	Up    = Vec{Y: 1}
	Down  = Vec{Y: -1}
	North = Vec{Z: 1}
	South = Vec{Z: -1}
	East  = Vec{X: 1}
	West  = Vec{X: -1}
)

// Horizontal lists the four directions a die can roll in.
var Horizontal = []Vec{North, East, South, West}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec) Scale(n int) Vec {
	return Vec{X: v.X * n, Y: v.Y * n, Z: v.Z * n}
}

func (v Vec) Neg() Vec {
	return v.Scale(-1)
}

func (v Vec) IsZero() bool {
	return v == Zero
}

// Flat returns v with its height dropped to y.
func (v Vec) Flat(y int) Vec {
	return Vec{X: v.X, Y: y, Z: v.Z}
}

// Point converts the cell into continuous coordinates.
func (v Vec) Point() Point {
	return Point{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func (v Vec) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// DominantAxis reduces v to a unit step along whichever horizontal axis has
// the largest magnitude. Ties go to the Z axis. A zero vector stays zero.
func DominantAxis(v Vec) Vec {
	switch {
	case v.X == 0 && v.Z == 0:
		return Zero
	case abs(v.X) > abs(v.Z):
		return Vec{X: sign(v.X)}
	default:
		return Vec{Z: sign(v.Z)}
	}
}

// Point is a continuous position used for in-between animation frames.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Lerp interpolates between a and b by t.
func Lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// Cell rounds the point to the nearest grid cell.
func (p Point) Cell() Vec {
	return Vec{
		X: int(math.Round(p.X)),
		Y: int(math.Round(p.Y)),
		Z: int(math.Round(p.Z)),
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}
