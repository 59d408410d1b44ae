package models

import (
	"time"

	"github.com/yeremiapane/restaurant-floor/geometry"
)

type Table struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	Number   string         `gorm:"type:varchar(50);not null" json:"number"`
	X        float64        `gorm:"not null;default:0" json:"x"`
	Y        float64        `gorm:"not null;default:0" json:"y"`
	Width    float64        `gorm:"not null" json:"width"`
	Height   float64        `gorm:"not null" json:"height"`
	Shape    geometry.Shape `gorm:"not null;default:0" json:"shape"`
	Capacity int            `gorm:"not null;default:0" json:"capacity"`
	Ping     bool           `gorm:"not null;default:false" json:"ping"`

	// Runtime state rebuilt by the scheduler on startup.
	BookingID   *uint            `gorm:"-" json:"booking_id,omitempty"`
	StatusSince time.Time        `gorm:"-" json:"status_since"`
	Seats       []geometry.Point `gorm:"-" json:"seats"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Table) Bounds() geometry.Rect {
	return geometry.Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// MaxSeats is the seat limit for the table's current shape and size.
func (t *Table) MaxSeats() int {
	return geometry.MaxSeats(t.Shape, t.Width, t.Height)
}

// Layout recomputes the seat coordinates from the table's geometry.
func (t *Table) Layout() {
	t.Seats = geometry.SeatPositions(t.Bounds(), t.Shape, t.Capacity)
}

// Occupied reports whether a booking is currently attached.
func (t *Table) Occupied() bool {
	return t.BookingID != nil
}
