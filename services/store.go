package services

import (
	"time"

	"github.com/yeremiapane/restaurant-floor/models"
)

// Store is the persistence collaborator. The registry writes through it before
// changing its own state, so a failed write leaves the floor untouched.
type Store interface {
	LoadTables() ([]models.Table, error)
	LoadBookings() ([]models.Booking, error)
	LoadStaff() ([]models.Staff, error)

	InsertTable(table *models.Table) error
	UpdateTable(table *models.Table) error
	DeleteTable(id uint) error

	InsertBooking(booking *models.Booking) error
	UpdateBooking(booking *models.Booking) error
	DeleteBooking(id uint) error
	SetBookingStatus(id uint, status models.BookingStatus) error
	SetBookingStaff(id uint, staffID *uint) error
	SetBookingSince(id uint, since time.Time) error

	InsertStaff(staff *models.Staff) error
	UpdateStaff(staff *models.Staff) error
	SetStaffPresent(id uint, present bool) error
}

// Clock returns the current time. Tests pin it.
type Clock func() time.Time
