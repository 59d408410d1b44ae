package services

import (
	"time"

	"github.com/yeremiapane/restaurant-floor/geometry"
	"github.com/yeremiapane/restaurant-floor/models"
)

const clockLayout = "15:04"

// TableView is everything the floor renderer needs to draw one table.
type TableView struct {
	ID        uint                  `json:"id"`
	Number    string                `json:"number"`
	Shape     geometry.Shape        `json:"shape"`
	Bounds    geometry.Rect         `json:"bounds"`
	Capacity  int                   `json:"capacity"`
	MaxSeats  int                   `json:"max_seats"`
	Seats     []geometry.Point      `json:"seats"`
	Lines     []string              `json:"lines"`
	Fill      string                `json:"fill"`
	Ping      bool                  `json:"ping"`
	Flash     bool                  `json:"flash"`
	BookingID *uint                 `json:"booking_id,omitempty"`
	StaffID   *uint                 `json:"staff_id,omitempty"`
	Status    *models.BookingStatus `json:"status,omitempty"`
	Window    *Window               `json:"window,omitempty"`
}

// Window is the time span shown for the current service state. End is nil
// for states without an estimate.
type Window struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// StatusWindow computes the displayed window of booking b attached to table t.
// A booking still waiting for its guests shows only the arrival time.
func StatusWindow(t *models.Table, b *models.Booking) Window {
	if d, ok := b.Status.Estimate(); ok {
		end := t.StatusSince.Add(d)
		return Window{Start: t.StatusSince, End: &end}
	}
	return Window{Start: b.Arrival}
}

// DisplayLines renders the text drawn in the middle of a table.
func DisplayLines(t *models.Table, b *models.Booking) []string {
	lines := []string{"Table " + t.Number}
	if b == nil {
		return append(lines, "Available")
	}

	w := StatusWindow(t, b)
	span := w.Start.Format(clockLayout)
	if w.End != nil {
		span += " - " + w.End.Format(clockLayout)
	}
	return append(lines, b.Status.Label(), span)
}

func newTableView(t *models.Table, b *models.Booking, flashPhase bool) TableView {
	seats := t.Seats
	if seats == nil {
		seats = []geometry.Point{}
	}

	view := TableView{
		ID:       t.ID,
		Number:   t.Number,
		Shape:    t.Shape,
		Bounds:   t.Bounds(),
		Capacity: t.Capacity,
		MaxSeats: t.MaxSeats(),
		Seats:    seats,
		Lines:    DisplayLines(t, b),
		Fill:     models.FreeTableColor,
		Ping:     t.Ping,
		Flash:    t.Ping && flashPhase,
	}

	if b != nil {
		id := b.ID
		status := b.Status
		window := StatusWindow(t, b)
		view.BookingID = &id
		view.StaffID = b.StaffID
		view.Status = &status
		view.Window = &window
		view.Fill = status.Color()
	}
	return view
}
