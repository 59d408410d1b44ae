package models

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus int

const (
	StatusEmpty BookingStatus = iota
	StatusArrived
	StatusOrdered
	StatusEating
	StatusPayingBill
	StatusCompleted
)

var statusNames = []string{"empty", "arrived", "ordered", "eating", "paying_bill", "completed"}
var statusLabels = []string{"Empty", "Arrived", "Ordered", "Eating", "Paying bill", "Completed"}

// Estimated time a table spends in each service state. Empty and Completed have none.
var statusEstimates = map[BookingStatus]time.Duration{
	StatusArrived:    600 * time.Second,
	StatusOrdered:    900 * time.Second,
	StatusEating:     2400 * time.Second,
	StatusPayingBill: 300 * time.Second,
}

// Fill colors handed to the floor renderer.
var statusColors = []string{"#DDE7F0", "#FFF4C2", "#FFD8A8", "#C8E6C9", "#F8BBD0", "#EEEEEE"}

// FreeTableColor fills a table with no booking attached.
const FreeTableColor = "#EEEEEE"

func (s BookingStatus) Valid() bool {
	return s >= StatusEmpty && s <= StatusCompleted
}

func (s BookingStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

func (s BookingStatus) Label() string {
	if !s.Valid() {
		return s.String()
	}
	return statusLabels[s]
}

// Estimate returns the expected duration of the state and false when the state has none.
func (s BookingStatus) Estimate() (time.Duration, bool) {
	d, ok := statusEstimates[s]
	return d, ok
}

func (s BookingStatus) Color() string {
	if !s.Valid() {
		return FreeTableColor
	}
	return statusColors[s]
}

func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted
}

// Next is the following state in the service sequence. Completed stays Completed.
func (s BookingStatus) Next() BookingStatus {
	if s >= StatusCompleted {
		return StatusCompleted
	}
	return s + 1
}

func ParseBookingStatus(raw string) (BookingStatus, error) {
	value := strings.TrimSpace(raw)
	for i := range statusNames {
		if strings.EqualFold(value, statusNames[i]) || strings.EqualFold(value, statusLabels[i]) {
			return BookingStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown booking status %q", raw)
}

func (s BookingStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown booking status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *BookingStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseBookingStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Booking struct {
	ID      uint          `gorm:"primaryKey" json:"id"`
	TableID uint          `gorm:"not null;index" json:"table_id"`
	Arrival time.Time     `gorm:"not null;index" json:"arrival"`
	Status  BookingStatus `gorm:"not null;default:0" json:"status"`
	StaffID *uint         `gorm:"index" json:"staff_id,omitempty"`

	// When the booking's table last changed state; restored on startup.
	StatusSince *time.Time `json:"status_since,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active bookings still compete for their table.
func (b *Booking) Active() bool {
	return !b.Status.Terminal()
}
