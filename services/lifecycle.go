package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/utils"
)

// Lifecycle moves bookings through Empty, Arrived, Ordered, Eating,
// PayingBill and Completed.
type Lifecycle struct {
	reg *Registry
}

func NewLifecycle(reg *Registry) *Lifecycle {
	return &Lifecycle{reg: reg}
}

// Set moves a booking to status. States may be skipped but never revisited.
// Reaching Completed frees the table and its waiter straight away.
func (l *Lifecycle) Set(bookingID uint, status models.BookingStatus) (*models.Booking, error) {
	b, ok := l.reg.bookings[bookingID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if b.Status.Terminal() {
		return nil, ErrBookingClosed
	}
	if status < b.Status {
		return nil, fmt.Errorf("%w: %s to %s", ErrStatusRegression, b.Status, status)
	}
	if status == b.Status {
		return b, nil
	}

	if err := l.reg.store.SetBookingStatus(b.ID, status); err != nil {
		return nil, fmt.Errorf("set status of booking %d: %w", b.ID, err)
	}
	previous := b.Status
	b.Status = status

	t := l.reg.tables[b.TableID]
	if t == nil || t.BookingID == nil || *t.BookingID != b.ID {
		utils.InfoLogger.Printf("Booking %d moved from %s to %s while not seated", b.ID, previous, status)
		return b, nil
	}

	l.reg.markSince(t, b, l.reg.now())

	if status.Terminal() {
		l.reg.detach(t)
	}

	utils.InfoLogger.Printf("Table %s: booking %d %s -> %s", t.Number, b.ID, previous, status)
	l.reg.publishStatus(t, b)
	return b, nil
}

// Next advances a booking by one state.
func (l *Lifecycle) Next(bookingID uint) (*models.Booking, error) {
	b, ok := l.reg.bookings[bookingID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if b.Status.Terminal() {
		return nil, ErrBookingClosed
	}
	return l.Set(bookingID, b.Status.Next())
}

// Window is the time span of the table's current service state.
func (l *Lifecycle) Window(tableID uint) (Window, bool, error) {
	t, ok := l.reg.tables[tableID]
	if !ok {
		return Window{}, false, ErrTableNotFound
	}
	b := l.reg.CurrentBooking(t)
	if b == nil {
		return Window{}, false, nil
	}
	return StatusWindow(t, b), true, nil
}

// DisplayLines is the text drawn on a table: its number, state and window.
func (l *Lifecycle) DisplayLines(tableID uint) ([]string, error) {
	t, ok := l.reg.tables[tableID]
	if !ok {
		return nil, ErrTableNotFound
	}
	return DisplayLines(t, l.reg.CurrentBooking(t)), nil
}
