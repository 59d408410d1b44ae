// Package geometry lays out seats around tables on the floor plan.
//
// Coordinates are in floor units with the origin at the top-left corner of the
// plan and y growing downwards. Seat points are seat centers.
package geometry

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

const (
	// SeatOffset is the distance between a table edge and the seats placed along it.
	SeatOffset = 20.0
	// SeatArc is the edge length a single seat occupies.
	SeatArc = 37.0
	// EdgeSlack lets a seat overhang the corners of a rectangular edge slightly.
	EdgeSlack = 5.0
	// MaxDimension caps the width and height of a table.
	MaxDimension = 1000.0
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// SeatSeq yields exactly capacity seat centers for a table with the given
// bounds and shape. The sequence can be ranged over any number of times.
//
// Capacity is not clamped here; callers clamp it with MaxSeats first. Asking
// for seats around a table without a positive size is a programming error and
// panics.
func SeatSeq(bounds Rect, shape Shape, capacity int) iter.Seq[Point] {
	if capacity > 0 {
		if bounds.Width <= 0 || bounds.Height <= 0 {
			panic(fmt.Sprintf("geometry: seat layout for table of size %gx%g", bounds.Width, bounds.Height))
		}
		if !shape.Valid() {
			panic(fmt.Sprintf("geometry: seat layout for %s", shape))
		}
	}

	return func(yield func(Point) bool) {
		if capacity <= 0 {
			return
		}
		switch shape {
		case Oval:
			ovalSeats(bounds, capacity, yield)
		case TwoSidedRectangle:
			twoSidedSeats(bounds, capacity, yield)
		case FourSidedRectangle:
			fourSidedSeats(bounds, capacity, yield)
		}
	}
}

// SeatPositions collects SeatSeq into a slice.
func SeatPositions(bounds Rect, shape Shape, capacity int) []Point {
	seats := slices.Collect(SeatSeq(bounds, shape, capacity))
	if seats == nil {
		seats = []Point{}
	}
	return seats
}

// MaxSeats reports how many seats fit around a table of the given shape and size.
func MaxSeats(shape Shape, width, height float64) int {
	if width <= 0 || height <= 0 {
		return 0
	}

	switch shape {
	case Oval:
		w := width + 2*SeatOffset
		h := height + 2*SeatOffset
		circumference := math.Pi * math.Sqrt((w*w+h*h)/2)
		return int(math.Floor(circumference / SeatArc))
	case TwoSidedRectangle:
		return 2 * edgeSeats(width)
	case FourSidedRectangle:
		return 2 * (edgeSeats(width) + edgeSeats(height))
	}
	return 0
}

func edgeSeats(length float64) int {
	return int(math.Floor((length + EdgeSlack) / SeatArc))
}

// Seats are placed parametrically starting at angle 0, the rightmost point.
func ovalSeats(b Rect, n int, yield func(Point) bool) bool {
	center := b.Center()
	rx := b.Width/2 + SeatOffset
	ry := b.Height/2 + SeatOffset
	step := 2 * math.Pi / float64(n)

	for i := 0; i < n; i++ {
		angle := step * float64(i)
		p := Point{
			X: center.X + rx*math.Cos(angle),
			Y: center.Y + ry*math.Sin(angle),
		}
		if !yield(p) {
			return false
		}
	}
	return true
}

// The bottom edge takes the extra seat when n is odd.
func twoSidedSeats(b Rect, n int, yield func(Point) bool) bool {
	top := n / 2
	right := b.X + b.Width

	topY := b.Y - SeatOffset
	ok := spaced(b.X, right, top, func(x float64) bool {
		return yield(Point{X: x, Y: topY})
	})
	if !ok {
		return false
	}

	bottomY := b.Y + b.Height + SeatOffset
	return spaced(b.X, right, n-top, func(x float64) bool {
		return yield(Point{X: x, Y: bottomY})
	})
}

func fourSidedSeats(b Rect, n int, yield func(Point) bool) bool {
	sides := sideSeats(b.Width, b.Height, n)

	// Odd remainders always land on the horizontal edges.
	if !twoSidedSeats(b, n-sides, yield) {
		return false
	}

	perSide := sides / 2
	bottom := b.Y + b.Height

	leftX := b.X - SeatOffset
	ok := spaced(b.Y, bottom, perSide, func(y float64) bool {
		return yield(Point{X: leftX, Y: y})
	})
	if !ok {
		return false
	}

	rightX := b.X + b.Width + SeatOffset
	return spaced(b.Y, bottom, perSide, func(y float64) bool {
		return yield(Point{X: rightX, Y: y})
	})
}

// sideSeats is the even number of seats shared by the left and right edges,
// proportional to the table's height.
func sideSeats(width, height float64, n int) int {
	share := math.RoundToEven(float64(n) * height / (width + height))
	return int(share) &^ 1
}

// spaced splits [lower, upper] into n equal segments and yields each segment's midpoint.
func spaced(lower, upper float64, n int, yield func(float64) bool) bool {
	if n <= 0 {
		return true
	}
	spacing := (upper - lower) / float64(n)
	for i := 0; i < n; i++ {
		if !yield(lower + spacing*(float64(i)+0.5)) {
			return false
		}
	}
	return true
}
