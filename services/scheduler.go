package services

import (
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/utils"
)

// DefaultHorizon is how far ahead bookings become eligible for their table.
const DefaultHorizon = 20 * time.Minute

// Scheduler attaches upcoming bookings to their tables and reports clashes.
type Scheduler struct {
	reg     *Registry
	Horizon time.Duration
}

func NewScheduler(reg *Registry) *Scheduler {
	return &Scheduler{reg: reg, Horizon: DefaultHorizon}
}

// Populate is the startup pass. Attachments restored from a previous run are
// expected, so later bookings replace earlier ones instead of clashing, and a
// seated booking keeps the status time saved before the restart.
func (s *Scheduler) Populate() []Clash {
	return s.Tick(true)
}

// Tick runs one assignment pass. Every active booking arriving before
// now+Horizon is matched against its table at most once. A table already
// holding a different active booking produces a clash unless override is set.
func (s *Scheduler) Tick(override bool) []Clash {
	now := s.reg.now()
	threshold := now.Add(s.Horizon)

	var pending []*models.Booking
	for _, b := range s.reg.bookings {
		if b.Active() && b.Arrival.Before(threshold) {
			pending = append(pending, b)
		}
	}
	sortBookings(pending)

	var clashes []Clash
	for _, t := range s.reg.Tables() {
		for i := 0; i < len(pending); {
			b := pending[i]
			if b.TableID != t.ID {
				i++
				continue
			}
			pending = slices.Delete(pending, i, i+1)

			current := s.reg.CurrentBooking(t)
			switch {
			case current != nil && current.ID == b.ID:
				// Already seated.
			case current != nil && !override:
				clash := Clash{
					TableID:           t.ID,
					TableNumber:       t.Number,
					BookingID:         b.ID,
					Arrival:           b.Arrival,
					ExistingBookingID: current.ID,
					ExistingArrival:   current.Arrival,
					DetectedAt:        now,
				}
				clashes = append(clashes, clash)
				s.report(clash)
			default:
				if current != nil {
					s.reg.balancer.Release(t, current)
				}
				since := now
				if override && b.StatusSince != nil && b.StatusSince.Before(now) {
					since = *b.StatusSince
				}
				s.seat(t, b, since)
			}
		}
	}
	return clashes
}

func (s *Scheduler) seat(t *models.Table, b *models.Booking, since time.Time) {
	s.reg.attach(t, b, since)
	if _, err := s.reg.balancer.Assign(t, b); err != nil {
		utils.ErrorLogger.Printf("Table %s seated without staff: %v", t.Number, err)
	}
	s.reg.publishStatus(t, b)
}

func (s *Scheduler) report(clash Clash) {
	utils.InfoLogger.WithFields(logrus.Fields{
		"table":    clash.TableNumber,
		"booking":  clash.BookingID,
		"occupied": clash.ExistingArrival.Format(time.DateTime),
	}).Warn("Booking clash")

	c := clash
	s.reg.bus.Publish(Event{
		Type:      EventClash,
		TableID:   clash.TableID,
		BookingID: clash.BookingID,
		Clash:     &c,
		At:        clash.DetectedAt,
	})
}
