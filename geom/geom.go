// Package geom provides the small value types shared by the other packages:
// points, sizes, vectors and rectangles.
package geom

import (
	"fmt"
	"math"
)

// Scalar is the set of coordinate types.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 |
		~float32 | ~float64
}

type Point[T Scalar] struct {
	X, Y T
}

func Pt[T Scalar](x, y T) Point[T] { return Point[T]{x, y} }

func (p Point[T]) Add(q Point[T]) Point[T] {
	return Point[T]{p.X + q.X, p.Y + q.Y}
}

// Move returns p translated by v.
func (p Point[T]) Move(v Vector[T]) Point[T] {
	return Point[T]{p.X + v.X, p.Y + v.Y}
}

func (p Point[T]) String() string {
	return fmt.Sprintf("(%v,%v)", p.X, p.Y)
}

type Size[T Scalar] struct {
	Width, Height T
}

func Sz[T Scalar](w, h T) Size[T] { return Size[T]{w, h} }

func (s Size[T]) String() string {
	return fmt.Sprintf("%vx%v", s.Width, s.Height)
}

type Vector[T Scalar] struct {
	X, Y T
}

func Vec[T Scalar](x, y T) Vector[T] { return Vector[T]{x, y} }

// Magnitude returns the euclidean norm of v.
func (v Vector[T]) Magnitude() float64 {
	x, y := float64(v.X), float64(v.Y)
	return math.Sqrt(x*x + y*y)
}

// Normalized returns the unit vector with the same direction as v. The zero
// vector is returned unchanged.
func (v Vector[T]) Normalized() Vector[float64] {
	m := v.Magnitude()
	if m == 0 {
		return Vector[float64]{float64(v.X), float64(v.Y)}
	}
	return Vector[float64]{float64(v.X) / m, float64(v.Y) / m}
}

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	Origin Point[int]
	Size   Size[int]
}

func R(x, y, w, h int) Rect {
	return Rect{Origin: Point[int]{x, y}, Size: Size[int]{w, h}}
}

// Centered returns the rectangle of the given size, centered in r.
//
// The offset from r's origin is computed with integer division, which
// truncates toward zero: when the size difference is odd, the result sits one
// pixel closer to r's origin. A size larger than r gives a rectangle
// overflowing r equally on both sides (up to truncation).
func (r Rect) Centered(size Size[int]) Rect {
	return Rect{
		Origin: Point[int]{
			X: r.Origin.X + (r.Size.Width-size.Width)/2,
			Y: r.Origin.Y + (r.Size.Height-size.Height)/2,
		},
		Size: size,
	}
}

// Add returns r translated by p.
func (r Rect) Add(p Point[int]) Rect {
	return Rect{Origin: r.Origin.Add(p), Size: r.Size}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// excluded.
func (r Rect) Contains(p Point[int]) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.Width &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("%v+%v", r.Origin, r.Size)
}
