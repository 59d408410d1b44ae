package services

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-floor/geometry"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/utils"
)

// TableDefaults describes a freshly created table.
type TableDefaults struct {
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Shape    geometry.Shape `json:"shape"`
	Capacity int            `json:"capacity"`
}

var DefaultTable = TableDefaults{
	X:        20,
	Y:        20,
	Width:    100,
	Height:   60,
	Shape:    geometry.TwoSidedRectangle,
	Capacity: 4,
}

// Registry owns the live floor: tables, bookings and the staff directory.
//
// It is not safe for concurrent use. The engine only touches it from its
// loop, which serializes every mutation.
type Registry struct {
	store    Store
	bus      *Bus
	clock    Clock
	balancer *Balancer

	tables   map[uint]*models.Table
	bookings map[uint]*models.Booking
	staff    map[uint]*models.Staff

	flash bool
}

func NewRegistry(store Store, bus *Bus, clock Clock) *Registry {
	if bus == nil {
		bus = NewBus()
	}
	if clock == nil {
		clock = time.Now
	}
	r := &Registry{
		store:    store,
		bus:      bus,
		clock:    clock,
		tables:   make(map[uint]*models.Table),
		bookings: make(map[uint]*models.Booking),
		staff:    make(map[uint]*models.Staff),
	}
	r.balancer = &Balancer{reg: r}
	return r
}

func (r *Registry) Balancer() *Balancer {
	return r.balancer
}

func (r *Registry) now() time.Time {
	return r.clock()
}

// Load replaces the in-memory floor with the store snapshot. Attachments and
// workloads start empty; the scheduler's population pass rebuilds them.
func (r *Registry) Load() error {
	tables, err := r.store.LoadTables()
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	bookings, err := r.store.LoadBookings()
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}
	staff, err := r.store.LoadStaff()
	if err != nil {
		return fmt.Errorf("load staff: %w", err)
	}

	r.tables = make(map[uint]*models.Table, len(tables))
	for i := range tables {
		t := tables[i]
		t.BookingID = nil
		if limit := t.MaxSeats(); t.Capacity > limit || t.Capacity < 0 {
			utils.ErrorLogger.Printf("Table %s stored with %d seats, clamping to %d", t.Number, t.Capacity, limit)
			t.Capacity = clampCapacity(t.Capacity, limit)
		}
		t.Layout()
		r.tables[t.ID] = &t
	}

	r.bookings = make(map[uint]*models.Booking, len(bookings))
	for i := range bookings {
		b := bookings[i]
		r.bookings[b.ID] = &b
	}

	r.staff = make(map[uint]*models.Staff, len(staff))
	for i := range staff {
		s := staff[i]
		s.Workload = 0
		r.staff[s.ID] = &s
	}

	utils.InfoLogger.Printf("Floor loaded: %d tables, %d bookings, %d staff", len(r.tables), len(r.bookings), len(r.staff))
	return nil
}

// Create adds a table using defaults and gives it the lowest free number.
func (r *Registry) Create(defaults TableDefaults) (*models.Table, error) {
	if defaults.Width <= 0 || defaults.Height <= 0 {
		return nil, ErrInvalidSize
	}
	if !defaults.Shape.Valid() {
		return nil, ErrInvalidShape
	}

	t := &models.Table{
		Number: strconv.Itoa(r.lowestFreeNumber()),
		X:      defaults.X,
		Y:      defaults.Y,
		Width:  min(defaults.Width, geometry.MaxDimension),
		Height: min(defaults.Height, geometry.MaxDimension),
		Shape:  defaults.Shape,
	}
	t.Capacity = clampCapacity(defaults.Capacity, t.MaxSeats())

	if err := r.store.InsertTable(t); err != nil {
		return nil, fmt.Errorf("insert table: %w", err)
	}
	t.Layout()
	r.tables[t.ID] = t

	utils.InfoLogger.Printf("New table created: %s (id=%d, %s, %d seats)", t.Number, t.ID, t.Shape, t.Capacity)
	r.publishLayout(t)
	return t, nil
}

// lowestFreeNumber finds the smallest positive integer not used as a table number.
func (r *Registry) lowestFreeNumber() int {
	used := make(map[int]bool, len(r.tables))
	for _, t := range r.tables {
		if n, err := strconv.Atoi(strings.TrimSpace(t.Number)); err == nil && n > 0 {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return n
}

func (r *Registry) Move(id uint, x, y float64) (*models.Table, error) {
	return r.update(id, func(t *models.Table) error {
		t.X = x
		t.Y = y
		return nil
	})
}

// Resize caps each axis at geometry.MaxDimension and shrinks the capacity if
// the new size holds fewer seats.
func (r *Registry) Resize(id uint, width, height float64) (*models.Table, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return r.update(id, func(t *models.Table) error {
		t.Width = min(width, geometry.MaxDimension)
		t.Height = min(height, geometry.MaxDimension)
		t.Capacity = clampCapacity(t.Capacity, t.MaxSeats())
		return nil
	})
}

func (r *Registry) SetShape(id uint, shape geometry.Shape) (*models.Table, error) {
	if !shape.Valid() {
		return nil, ErrInvalidShape
	}
	return r.update(id, func(t *models.Table) error {
		t.Shape = shape
		t.Capacity = clampCapacity(t.Capacity, t.MaxSeats())
		return nil
	})
}

// SetCapacity silently clamps n to [0, MaxSeats]. The returned table carries
// the value actually stored.
func (r *Registry) SetCapacity(id uint, n int) (*models.Table, error) {
	return r.update(id, func(t *models.Table) error {
		t.Capacity = clampCapacity(n, t.MaxSeats())
		return nil
	})
}

func (r *Registry) SetNumber(id uint, number string) (*models.Table, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrInvalidNumber
	}
	return r.update(id, func(t *models.Table) error {
		t.Number = number
		return nil
	})
}

func (r *Registry) SetPing(id uint, ping bool) (*models.Table, error) {
	return r.update(id, func(t *models.Table) error {
		t.Ping = ping
		return nil
	})
}

// update applies change to a copy, persists it and only then commits it.
func (r *Registry) update(id uint, change func(t *models.Table) error) (*models.Table, error) {
	t, ok := r.tables[id]
	if !ok {
		return nil, ErrTableNotFound
	}

	next := *t
	if err := change(&next); err != nil {
		return nil, err
	}
	if err := r.store.UpdateTable(&next); err != nil {
		return nil, fmt.Errorf("update table %d: %w", id, err)
	}

	next.Layout()
	*t = next
	r.publishLayout(t)
	return t, nil
}

// Delete removes a table. An attached booking is detached and its staff released.
func (r *Registry) Delete(id uint) error {
	t, ok := r.tables[id]
	if !ok {
		return ErrTableNotFound
	}
	if err := r.store.DeleteTable(id); err != nil {
		return fmt.Errorf("delete table %d: %w", id, err)
	}

	r.detach(t)
	delete(r.tables, id)

	utils.InfoLogger.Printf("Table %d deleted", id)
	r.bus.Publish(Event{Type: EventTableDeleted, TableID: id, At: r.now()})
	return nil
}

func (r *Registry) Table(id uint) (*models.Table, error) {
	t, ok := r.tables[id]
	if !ok {
		return nil, ErrTableNotFound
	}
	return t, nil
}

// Tables returns every table ordered by id.
func (r *Registry) Tables() []*models.Table {
	tables := make([]*models.Table, 0, len(r.tables))
	for _, t := range r.tables {
		tables = append(tables, t)
	}
	slices.SortFunc(tables, func(a, b *models.Table) int { return cmp.Compare(a.ID, b.ID) })
	return tables
}

// CurrentBooking is the active booking attached to t, if any.
func (r *Registry) CurrentBooking(t *models.Table) *models.Booking {
	if t.BookingID == nil {
		return nil
	}
	return r.bookings[*t.BookingID]
}

func (r *Registry) View(id uint) (TableView, error) {
	t, ok := r.tables[id]
	if !ok {
		return TableView{}, ErrTableNotFound
	}
	return r.view(t), nil
}

func (r *Registry) Views() []TableView {
	tables := r.Tables()
	views := make([]TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, r.view(t))
	}
	return views
}

func (r *Registry) view(t *models.Table) TableView {
	return newTableView(t, r.CurrentBooking(t), r.flash)
}

func (r *Registry) publishLayout(t *models.Table) {
	view := r.view(t)
	r.bus.Publish(Event{Type: EventLayoutChanged, TableID: t.ID, View: &view, At: r.now()})
}

func (r *Registry) publishStatus(t *models.Table, b *models.Booking) {
	view := r.view(t)
	r.bus.Publish(Event{Type: EventStatusChanged, TableID: t.ID, BookingID: b.ID, View: &view, At: r.now()})
}

// AddBooking records a booking for an existing table. It starts Empty and is
// picked up by the scheduler once it enters the horizon.
func (r *Registry) AddBooking(tableID uint, arrival time.Time) (*models.Booking, error) {
	if _, ok := r.tables[tableID]; !ok {
		return nil, ErrTableNotFound
	}

	b := &models.Booking{
		TableID: tableID,
		Arrival: arrival,
		Status:  models.StatusEmpty,
	}
	if err := r.store.InsertBooking(b); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	r.bookings[b.ID] = b

	utils.InfoLogger.Printf("Booking %d added for table %d at %s", b.ID, tableID, arrival.Format(time.DateTime))
	return b, nil
}

// DeleteBooking cancels a booking, freeing its table if it was attached.
func (r *Registry) DeleteBooking(id uint) error {
	b, ok := r.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	if err := r.store.DeleteBooking(id); err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}

	t := r.tables[b.TableID]
	attached := t != nil && t.BookingID != nil && *t.BookingID == id
	if attached {
		r.detach(t)
	}
	delete(r.bookings, id)

	if attached {
		r.publishLayout(t)
	}
	return nil
}

// Reschedule changes the arrival time of a booking that is not seated yet.
// The table a booking was made for never changes.
func (r *Registry) Reschedule(id uint, arrival time.Time) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if !b.Active() {
		return nil, ErrBookingClosed
	}
	if t := r.tables[b.TableID]; t != nil && t.BookingID != nil && *t.BookingID == id {
		return nil, ErrBookingSeated
	}

	next := *b
	next.Arrival = arrival
	if err := r.store.UpdateBooking(&next); err != nil {
		return nil, fmt.Errorf("update booking %d: %w", id, err)
	}
	b.Arrival = arrival

	utils.InfoLogger.Printf("Booking %d moved to %s", id, arrival.Format(time.DateTime))
	return b, nil
}

func (r *Registry) Booking(id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// Bookings returns every booking ordered by arrival, then id.
func (r *Registry) Bookings() []*models.Booking {
	bookings := make([]*models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		bookings = append(bookings, b)
	}
	sortBookings(bookings)
	return bookings
}

// BookingsBetween returns bookings arriving in [from, to).
func (r *Registry) BookingsBetween(from, to time.Time) []*models.Booking {
	var bookings []*models.Booking
	for _, b := range r.bookings {
		if !b.Arrival.Before(from) && b.Arrival.Before(to) {
			bookings = append(bookings, b)
		}
	}
	sortBookings(bookings)
	return bookings
}

func sortBookings(bookings []*models.Booking) {
	slices.SortFunc(bookings, func(a, b *models.Booking) int {
		if c := a.Arrival.Compare(b.Arrival); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func (r *Registry) AddStaff(s *models.Staff) error {
	if err := r.store.InsertStaff(s); err != nil {
		return fmt.Errorf("insert staff: %w", err)
	}
	s.Workload = 0
	r.staff[s.ID] = s
	return nil
}

// UpdateStaff applies change to a copy of the staff member and stores it.
// Presence and workload are managed elsewhere and are left untouched.
func (r *Registry) UpdateStaff(id uint, change func(s *models.Staff)) (*models.Staff, error) {
	s, ok := r.staff[id]
	if !ok {
		return nil, ErrStaffNotFound
	}

	next := *s
	change(&next)
	next.ID = s.ID
	next.Present = s.Present
	next.Workload = s.Workload
	if err := r.store.UpdateStaff(&next); err != nil {
		return nil, fmt.Errorf("update staff %d: %w", id, err)
	}
	*s = next
	return s, nil
}

// SetPresent marks a staff member as on or off the floor. Tables already
// assigned to them keep their assignment.
func (r *Registry) SetPresent(id uint, present bool) (*models.Staff, error) {
	s, ok := r.staff[id]
	if !ok {
		return nil, ErrStaffNotFound
	}
	if err := r.store.SetStaffPresent(id, present); err != nil {
		return nil, fmt.Errorf("update staff %d: %w", id, err)
	}
	s.Present = present
	return s, nil
}

func (r *Registry) StaffMember(id uint) (*models.Staff, error) {
	s, ok := r.staff[id]
	if !ok {
		return nil, ErrStaffNotFound
	}
	return s, nil
}

// StaffList returns the directory ordered by id.
func (r *Registry) StaffList() []*models.Staff {
	list := make([]*models.Staff, 0, len(r.staff))
	for _, s := range r.staff {
		list = append(list, s)
	}
	slices.SortFunc(list, func(a, b *models.Staff) int { return cmp.Compare(a.ID, b.ID) })
	return list
}

// attach makes b the table's current booking and starts its status clock at since.
func (r *Registry) attach(t *models.Table, b *models.Booking, since time.Time) {
	id := b.ID
	t.BookingID = &id
	r.markSince(t, b, since)
}

// markSince moves the table's status clock forward to since and records it
// on the booking so a restart can restore it.
func (r *Registry) markSince(t *models.Table, b *models.Booking, since time.Time) {
	if since.Before(t.StatusSince) {
		since = t.StatusSince
	}
	t.StatusSince = since
	if b.StatusSince != nil && b.StatusSince.Equal(since) {
		return
	}
	if err := r.store.SetBookingSince(b.ID, since); err != nil {
		utils.ErrorLogger.Printf("Error saving status time of booking %d: %v", b.ID, err)
		return
	}
	b.StatusSince = &since
}

// detach clears the table's booking and releases whoever was serving it.
func (r *Registry) detach(t *models.Table) {
	if t.BookingID == nil {
		return
	}
	b := r.bookings[*t.BookingID]
	t.BookingID = nil
	r.balancer.Release(t, b)
}

// toggleFlash flips the shared outline phase used for pinged tables.
func (r *Registry) toggleFlash() bool {
	r.flash = !r.flash
	return r.flash
}

func clampCapacity(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
