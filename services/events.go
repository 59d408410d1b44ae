package services

import "time"

type EventType string

const (
	EventLayoutChanged EventType = "layout_changed"
	EventTableDeleted  EventType = "table_deleted"
	EventStatusChanged EventType = "status_changed"
	EventStaffAssigned EventType = "staff_assigned"
	EventStaffReleased EventType = "staff_released"
	EventClash         EventType = "clash"
	EventPing          EventType = "ping"
)

// Clash reports a booking that could not be attached because its table is
// still occupied by another active booking.
type Clash struct {
	TableID           uint      `json:"table_id"`
	TableNumber       string    `json:"table_number"`
	BookingID         uint      `json:"booking_id"`
	Arrival           time.Time `json:"arrival"`
	ExistingBookingID uint      `json:"existing_booking_id"`
	ExistingArrival   time.Time `json:"existing_arrival"`
	DetectedAt        time.Time `json:"detected_at"`
}

type Event struct {
	Type      EventType  `json:"event"`
	TableID   uint       `json:"table_id,omitempty"`
	BookingID uint       `json:"booking_id,omitempty"`
	StaffID   uint       `json:"staff_id,omitempty"`
	Flash     bool       `json:"flash,omitempty"`
	View      *TableView `json:"table,omitempty"`
	Clash     *Clash     `json:"clash,omitempty"`
	At        time.Time  `json:"at"`
}

type Subscriber interface {
	Notify(event Event)
}

type SubscriberFunc func(event Event)

func (f SubscriberFunc) Notify(event Event) {
	f(event)
}

// Bus fans events out to subscribers in registration order. Subscribers are
// called on the engine loop and must not call back into the engine.
type Bus struct {
	subscribers []Subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe must be called before the engine starts.
func (b *Bus) Subscribe(s Subscriber) {
	b.subscribers = append(b.subscribers, s)
}

func (b *Bus) Publish(event Event) {
	for _, s := range b.subscribers {
		s.Notify(event)
	}
}
