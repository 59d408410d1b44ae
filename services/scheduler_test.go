package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-floor/models"
)

func TestTickAttachesWithinHorizon(t *testing.T) {
	f := newFixture(t)
	soon := f.table(t)
	later := f.table(t)
	late := f.table(t)

	seated := f.booking(t, soon, testNow.Add(19*time.Minute))
	f.booking(t, later, testNow.Add(20*time.Minute))
	overdue := f.booking(t, late, testNow.Add(-45*time.Minute))

	clashes := f.scheduler.Tick(false)
	assert.Empty(t, clashes)

	require.True(t, soon.Occupied())
	assert.Equal(t, seated.ID, *soon.BookingID)
	assert.True(t, soon.StatusSince.Equal(testNow))
	assert.False(t, later.Occupied(), "arrival exactly at the horizon waits")
	require.True(t, late.Occupied())
	assert.Equal(t, overdue.ID, *late.BookingID)

	f.clock.Advance(time.Minute)
	f.scheduler.Tick(false)
	assert.True(t, later.Occupied())
}

func TestTickReportsClash(t *testing.T) {
	f := newFixture(t)
	table := f.table(t)

	x := f.booking(t, table, testNow.Add(-10*time.Minute))
	f.scheduler.Tick(false)
	_, err := f.lifecycle.Set(x.ID, models.StatusArrived)
	require.NoError(t, err)

	y := f.booking(t, table, testNow.Add(-20*time.Minute))
	clashes := f.scheduler.Tick(false)

	require.Len(t, clashes, 1)
	assert.Equal(t, y.ID, clashes[0].BookingID)
	assert.Equal(t, x.ID, clashes[0].ExistingBookingID)
	assert.Equal(t, table.Number, clashes[0].TableNumber)
	assert.True(t, clashes[0].DetectedAt.Equal(testNow))
	assert.Equal(t, x.ID, *table.BookingID)
	assert.Len(t, f.events.ofType(EventClash), 1)

	// The clash is reported again on every pass until it is resolved.
	assert.Len(t, f.scheduler.Tick(false), 1)

	_, err = f.lifecycle.Set(x.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, f.scheduler.Tick(false))
	assert.Equal(t, y.ID, *table.BookingID)
}

func TestTickIsIdempotent(t *testing.T) {
	f := newFixture(t)
	waiter := f.staff(t, "Ana", true, 0)
	first := f.table(t)
	second := f.table(t)
	f.booking(t, first, testNow)
	f.booking(t, second, testNow.Add(5*time.Minute))

	f.scheduler.Tick(false)
	before := []*uint{first.BookingID, second.BookingID}
	sinceFirst, sinceSecond := first.StatusSince, second.StatusSince
	assigned := len(f.events.ofType(EventStaffAssigned))

	f.clock.Advance(10 * time.Second)
	clashes := f.scheduler.Tick(false)

	assert.Empty(t, clashes)
	assert.Equal(t, *before[0], *first.BookingID)
	assert.Equal(t, *before[1], *second.BookingID)
	assert.Equal(t, sinceFirst, first.StatusSince)
	assert.Equal(t, sinceSecond, second.StatusSince)
	assert.Equal(t, 2, waiter.Workload)
	assert.Len(t, f.events.ofType(EventStaffAssigned), assigned)
}

func TestPopulateLetsLaterBookingWin(t *testing.T) {
	f := newFixture(t)
	waiter := f.staff(t, "Ana", true, 0)
	table := f.table(t)

	f.booking(t, table, testNow.Add(-30*time.Minute))
	newer := f.booking(t, table, testNow.Add(-5*time.Minute))

	clashes := f.scheduler.Populate()
	assert.Empty(t, clashes)
	require.True(t, table.Occupied())
	assert.Equal(t, newer.ID, *table.BookingID)
	assert.Equal(t, 1, waiter.Workload)
}

func TestPopulateRestoresPersistedWaiter(t *testing.T) {
	f := newFixture(t)
	first := f.staff(t, "Ana", true, 0)
	second := f.staff(t, "Budi", true, 0)
	table := f.table(t)
	b := f.booking(t, table, testNow)
	require.NoError(t, f.store.SetBookingStaff(b.ID, &second.ID))

	reg := NewRegistry(f.store, nil, f.clock.Now)
	require.NoError(t, reg.Load())
	NewScheduler(reg).Populate()

	restored, err := reg.Booking(b.ID)
	require.NoError(t, err)
	require.NotNil(t, restored.StaffID)
	assert.Equal(t, second.ID, *restored.StaffID)

	ana, _ := reg.StaffMember(first.ID)
	budi, _ := reg.StaffMember(second.ID)
	assert.Equal(t, 0, ana.Workload)
	assert.Equal(t, 1, budi.Workload)
}

func TestReseatedBookingDropsAbsentWaiter(t *testing.T) {
	f := newFixture(t)
	ana := f.staff(t, "Ana", true, 0)
	table := f.table(t)
	older := f.booking(t, table, testNow.Add(-30*time.Minute))
	newer := f.booking(t, table, testNow.Add(-5*time.Minute))

	f.scheduler.Populate()
	require.Equal(t, newer.ID, *table.BookingID)
	require.NotNil(t, older.StaffID)
	assert.Equal(t, ana.ID, *older.StaffID)

	_, err := f.reg.SetPresent(ana.ID, false)
	require.NoError(t, err)
	budi := f.staff(t, "Budi", true, 0)

	_, err = f.lifecycle.Set(newer.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 0, ana.Workload)

	f.scheduler.Tick(false)
	require.Equal(t, older.ID, *table.BookingID)
	require.NotNil(t, older.StaffID)
	assert.Equal(t, budi.ID, *older.StaffID)
	assert.Equal(t, 1, budi.Workload)
	assert.Equal(t, 0, ana.Workload)

	stored, err := f.store.LoadBookings()
	require.NoError(t, err)
	require.NotNil(t, stored[0].StaffID)
	assert.Equal(t, budi.ID, *stored[0].StaffID)
}

func TestPopulateRestoresStatusTime(t *testing.T) {
	f := newFixture(t)
	table := f.table(t)
	b := f.booking(t, table, testNow.Add(-time.Hour))

	f.clock.Set(testNow.Add(-50 * time.Minute))
	f.scheduler.Tick(false)
	_, err := f.lifecycle.Set(b.ID, models.StatusEating)
	require.NoError(t, err)
	eatingSince := testNow.Add(-50 * time.Minute)

	f.clock.Set(testNow)
	reg := NewRegistry(f.store, nil, f.clock.Now)
	require.NoError(t, reg.Load())
	NewScheduler(reg).Populate()

	restored, err := reg.Table(table.ID)
	require.NoError(t, err)
	require.True(t, restored.Occupied())
	assert.True(t, restored.StatusSince.Equal(eatingSince), restored.StatusSince)

	window, ok, err := NewLifecycle(reg).Window(table.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, window.End.Equal(eatingSince.Add(40*time.Minute)))
}

func TestSchedulerHorizonIsConfigurable(t *testing.T) {
	f := newFixture(t)
	table := f.table(t)
	f.booking(t, table, testNow.Add(50*time.Minute))

	f.scheduler.Tick(false)
	assert.False(t, table.Occupied())

	f.scheduler.Horizon = time.Hour
	f.scheduler.Tick(false)
	assert.True(t, table.Occupied())
}
