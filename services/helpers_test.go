package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-floor/database"
	"github.com/yeremiapane/restaurant-floor/models"
)

var testNow = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.Set(c.Now().Add(d))
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) ofType(typ EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func setupTestStore(t *testing.T) *database.Store {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return database.NewStore(db)
}

type fixture struct {
	store     *database.Store
	clock     *fakeClock
	events    *recorder
	reg       *Registry
	lifecycle *Lifecycle
	scheduler *Scheduler
}

func newFixture(t *testing.T) *fixture {
	store := setupTestStore(t)
	clock := &fakeClock{now: testNow}
	events := &recorder{}
	bus := NewBus()
	bus.Subscribe(events)
	reg := NewRegistry(store, bus, clock.Now)

	return &fixture{
		store:     store,
		clock:     clock,
		events:    events,
		reg:       reg,
		lifecycle: NewLifecycle(reg),
		scheduler: NewScheduler(reg),
	}
}

func (f *fixture) table(t *testing.T) *models.Table {
	table, err := f.reg.Create(DefaultTable)
	require.NoError(t, err)
	return table
}

func (f *fixture) booking(t *testing.T, table *models.Table, arrival time.Time) *models.Booking {
	b, err := f.reg.AddBooking(table.ID, arrival)
	require.NoError(t, err)
	return b
}

func (f *fixture) staff(t *testing.T, name string, present bool, workload int) *models.Staff {
	s := &models.Staff{FirstName: name, Password: "hash"}
	require.NoError(t, f.reg.AddStaff(s))
	if present {
		_, err := f.reg.SetPresent(s.ID, true)
		require.NoError(t, err)
	}
	s.Workload = workload
	return s
}

// failingStore rejects table and status writes.
type failingStore struct {
	*database.Store
}

var errStoreDown = errors.New("store unavailable")

func (failingStore) UpdateTable(*models.Table) error {
	return errStoreDown
}

func (failingStore) SetBookingStatus(uint, models.BookingStatus) error {
	return errStoreDown
}
