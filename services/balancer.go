package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/utils"
)

// Balancer hands newly active tables to the least busy staff member on the floor.
type Balancer struct {
	reg *Registry
}

// Pick returns the present staff member with the lowest workload, lowest id
// first on ties, or nil when nobody is present.
func (lb *Balancer) Pick() *models.Staff {
	var best *models.Staff
	for _, s := range lb.reg.StaffList() {
		if !s.Present {
			continue
		}
		if best == nil || s.Workload < best.Workload {
			best = s
		}
	}
	return best
}

// Assign gives b's table a waiter. A booking that already names a staff member
// who is on the floor keeps them; otherwise the saved waiter is dropped and a
// new one picked. Returns nil when nobody is present; the table then stays
// staffless.
func (lb *Balancer) Assign(t *models.Table, b *models.Booking) (*models.Staff, error) {
	if b.StaffID != nil {
		if s, ok := lb.reg.staff[*b.StaffID]; ok && s.Present {
			s.Workload++
			return s, nil
		}
		if err := lb.reg.store.SetBookingStaff(b.ID, nil); err != nil {
			return nil, fmt.Errorf("clear staff of booking %d: %w", b.ID, err)
		}
		b.StaffID = nil
	}

	s := lb.Pick()
	if s == nil {
		utils.InfoLogger.Printf("No staff present, table %s left unassigned", t.Number)
		return nil, nil
	}

	id := s.ID
	if err := lb.reg.store.SetBookingStaff(b.ID, &id); err != nil {
		return nil, fmt.Errorf("assign staff %d to booking %d: %w", id, b.ID, err)
	}
	b.StaffID = &id
	s.Workload++

	utils.InfoLogger.Printf("Staff %s assigned to table %s (workload=%d)", s.Name(), t.Number, s.Workload)
	lb.reg.bus.Publish(Event{
		Type:      EventStaffAssigned,
		TableID:   t.ID,
		BookingID: b.ID,
		StaffID:   s.ID,
		At:        lb.reg.now(),
	})
	return s, nil
}

// Release lowers the workload of whoever served b, never below zero.
func (lb *Balancer) Release(t *models.Table, b *models.Booking) {
	if b == nil || b.StaffID == nil {
		return
	}
	s, ok := lb.reg.staff[*b.StaffID]
	if !ok {
		return
	}
	if s.Workload > 0 {
		s.Workload--
	}

	lb.reg.bus.Publish(Event{
		Type:      EventStaffReleased,
		TableID:   t.ID,
		BookingID: b.ID,
		StaffID:   s.ID,
		At:        lb.reg.now(),
	})
}
