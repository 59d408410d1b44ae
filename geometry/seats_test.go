package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allShapes = []Shape{Oval, TwoSidedRectangle, FourSidedRectangle}

func TestSeatCountMatchesCapacity(t *testing.T) {
	sizes := []Rect{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 50, Y: 80, Width: 240, Height: 90},
		{X: 10, Y: 10, Width: 60, Height: 300},
		{X: 0, Y: 0, Width: 1000, Height: 1000},
	}

	for _, shape := range allShapes {
		for _, bounds := range sizes {
			max := MaxSeats(shape, bounds.Width, bounds.Height)
			for capacity := 0; capacity <= max; capacity++ {
				seats := SeatPositions(bounds, shape, capacity)
				assert.Len(t, seats, capacity, "%s %gx%g capacity %d", shape, bounds.Width, bounds.Height, capacity)
			}
		}
	}
}

func TestSeatSeqIsRestartable(t *testing.T) {
	seq := SeatSeq(Rect{Width: 120, Height: 80}, FourSidedRectangle, 6)

	var first, second []Point
	for p := range seq {
		first = append(first, p)
	}
	for p := range seq {
		second = append(second, p)
	}
	assert.Equal(t, first, second)
	assert.Len(t, first, 6)
}

func TestSeatSeqStopsEarly(t *testing.T) {
	count := 0
	for range SeatSeq(Rect{Width: 200, Height: 200}, Oval, 12) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestZeroCapacityIsEmpty(t *testing.T) {
	for _, shape := range allShapes {
		seats := SeatPositions(Rect{Width: 100, Height: 100}, shape, 0)
		assert.NotNil(t, seats)
		assert.Empty(t, seats)
	}

	// No layout is attempted, so a degenerate size is tolerated here.
	assert.Empty(t, SeatPositions(Rect{}, Oval, 0))
}

func TestOvalSeatsEvenlySpaced(t *testing.T) {
	bounds := Rect{X: 100, Y: 50, Width: 160, Height: 100}
	capacity := 7
	seats := SeatPositions(bounds, Oval, capacity)

	center := bounds.Center()
	rx := bounds.Width/2 + SeatOffset
	ry := bounds.Height/2 + SeatOffset

	assert.InDelta(t, center.X+rx, seats[0].X, 1e-9)
	assert.InDelta(t, center.Y, seats[0].Y, 1e-9)

	step := 2 * math.Pi / float64(capacity)
	for i, p := range seats {
		angle := math.Atan2((p.Y-center.Y)/ry, (p.X-center.X)/rx)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		assert.InDelta(t, step*float64(i), angle, 1e-9, "seat %d", i)
	}
}

func TestTwoSidedOddCapacityFavoursBottom(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 100, Height: 60}
	seats := SeatPositions(bounds, TwoSidedRectangle, 5)

	var top, bottom []Point
	for _, p := range seats {
		switch p.Y {
		case bounds.Y - SeatOffset:
			top = append(top, p)
		case bounds.Y + bounds.Height + SeatOffset:
			bottom = append(bottom, p)
		default:
			t.Fatalf("seat %+v is not on a horizontal edge", p)
		}
	}

	assert.Len(t, top, 2)
	assert.Len(t, bottom, 3)

	// Each seat sits in the middle of its own segment of the edge.
	assert.InDelta(t, 25, top[0].X, 1e-9)
	assert.InDelta(t, 75, top[1].X, 1e-9)
	assert.InDelta(t, 100.0/6, bottom[0].X, 1e-9)
	assert.InDelta(t, 50, bottom[1].X, 1e-9)
	assert.InDelta(t, 500.0/6, bottom[2].X, 1e-9)
}

func TestFourSidedSplit(t *testing.T) {
	// Square table: half the seats go to the sides.
	bounds := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	seats := SeatPositions(bounds, FourSidedRectangle, 8)

	counts := map[string]int{}
	for _, p := range seats {
		switch {
		case p.Y == -SeatOffset:
			counts["top"]++
		case p.Y == bounds.Height+SeatOffset:
			counts["bottom"]++
		case p.X == -SeatOffset:
			counts["left"]++
		case p.X == bounds.Width+SeatOffset:
			counts["right"]++
		}
	}
	assert.Equal(t, map[string]int{"top": 2, "bottom": 2, "left": 2, "right": 2}, counts)
}

func TestFourSidedOddRemainderOnHorizontalEdges(t *testing.T) {
	bounds := Rect{Width: 200, Height: 100}
	// 5*100/300 = 1.67 -> 2 side seats, 3 on the horizontal edges.
	seats := SeatPositions(bounds, FourSidedRectangle, 5)
	assert.Len(t, seats, 5)

	sides := 0
	for _, p := range seats {
		if p.X == -SeatOffset || p.X == bounds.Width+SeatOffset {
			sides++
		}
	}
	assert.Equal(t, 2, sides)
}

func TestSideSeatsRoundsHalfToEven(t *testing.T) {
	// 5*100/200 = 2.5 rounds to 2.
	assert.Equal(t, 2, sideSeats(100, 100, 5))
	// 7*100/200 = 3.5 rounds to 4.
	assert.Equal(t, 4, sideSeats(100, 100, 7))
	// 3*100/200 = 1.5 rounds to 2.
	assert.Equal(t, 2, sideSeats(100, 100, 3))
	// Always even.
	assert.Equal(t, 0, sideSeats(300, 100, 3))
}

func TestMaxSeats(t *testing.T) {
	cases := []struct {
		shape         Shape
		width, height float64
		want          int
	}{
		{TwoSidedRectangle, 100, 60, 4},
		{TwoSidedRectangle, 32, 60, 2},
		{TwoSidedRectangle, 31, 60, 0},
		{FourSidedRectangle, 100, 100, 8},
		{FourSidedRectangle, 180, 69, 14},
		// Circle of diameter 140 around a 100 table: 439.8 / 37.
		{Oval, 100, 100, 11},
		{Oval, 0, 100, 0},
		{Shape(9), 100, 100, 0},
	}

	for _, tt := range cases {
		got := MaxSeats(tt.shape, tt.width, tt.height)
		assert.Equal(t, tt.want, got, "MaxSeats(%s, %g, %g)", tt.shape, tt.width, tt.height)
	}
}

func TestSeatSeqPanicsOnDegenerateTable(t *testing.T) {
	assert.Panics(t, func() {
		SeatSeq(Rect{Width: 0, Height: 50}, TwoSidedRectangle, 2)
	})
	assert.Panics(t, func() {
		SeatSeq(Rect{Width: 50, Height: -1}, Oval, 1)
	})
	assert.Panics(t, func() {
		SeatSeq(Rect{Width: 50, Height: 50}, Shape(7), 1)
	})
}

func TestParseShape(t *testing.T) {
	shape, err := ParseShape("Rectangle (two sides)")
	assert.NoError(t, err)
	assert.Equal(t, TwoSidedRectangle, shape)

	shape, err = ParseShape("FOUR_SIDED_RECTANGLE")
	assert.NoError(t, err)
	assert.Equal(t, FourSidedRectangle, shape)

	_, err = ParseShape("triangle")
	assert.Error(t, err)

	text, err := Oval.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "oval", string(text))

	var s Shape
	assert.NoError(t, s.UnmarshalText([]byte("oval")))
	assert.Equal(t, Oval, s)
}
