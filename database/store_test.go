package database

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-floor/geometry"
	"github.com/yeremiapane/restaurant-floor/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestStoreTables(t *testing.T) {
	store := NewStore(setupTestDB(t))

	table := &models.Table{Number: "1", X: 10, Y: 20, Width: 100, Height: 60, Shape: geometry.FourSidedRectangle, Capacity: 6}
	require.NoError(t, store.InsertTable(table))
	assert.NotZero(t, table.ID)

	table.X = 300
	table.Capacity = 4
	table.Ping = true
	require.NoError(t, store.UpdateTable(table))

	tables, err := store.LoadTables()
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, 300.0, tables[0].X)
	assert.Equal(t, 4, tables[0].Capacity)
	assert.Equal(t, geometry.FourSidedRectangle, tables[0].Shape)
	assert.True(t, tables[0].Ping)

	require.NoError(t, store.DeleteTable(table.ID))
	tables, err = store.LoadTables()
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestStoreBookings(t *testing.T) {
	store := NewStore(setupTestDB(t))

	arrival := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	late := &models.Booking{TableID: 1, Arrival: arrival.Add(time.Hour)}
	early := &models.Booking{TableID: 1, Arrival: arrival}
	require.NoError(t, store.InsertBooking(late))
	require.NoError(t, store.InsertBooking(early))

	staff := &models.Staff{FirstName: "Ana", Password: "x"}
	require.NoError(t, store.InsertStaff(staff))

	require.NoError(t, store.SetBookingStatus(early.ID, models.StatusEating))
	require.NoError(t, store.SetBookingStaff(early.ID, &staff.ID))

	bookings, err := store.LoadBookings()
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, early.ID, bookings[0].ID, "ordered by arrival")
	assert.Equal(t, models.StatusEating, bookings[0].Status)
	require.NotNil(t, bookings[0].StaffID)
	assert.Equal(t, staff.ID, *bookings[0].StaffID)
	assert.True(t, bookings[0].Arrival.Equal(arrival))

	require.NoError(t, store.SetBookingStaff(early.ID, nil))
	require.NoError(t, store.DeleteBooking(late.ID))
	bookings, err = store.LoadBookings()
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Nil(t, bookings[0].StaffID)
}

func TestStoreStaff(t *testing.T) {
	store := NewStore(setupTestDB(t))

	count, err := store.CountStaff()
	require.NoError(t, err)
	assert.Zero(t, count)

	staff := &models.Staff{FirstName: "Budi", LastName: "Santoso", Password: "hash"}
	require.NoError(t, store.InsertStaff(staff))
	require.NoError(t, store.SetStaffPresent(staff.ID, true))

	list, err := store.LoadStaff()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Present)
	assert.Equal(t, "Budi Santoso", list[0].Name())
	assert.Zero(t, list[0].Workload)
}

func TestSplitStatements(t *testing.T) {
	script := `-- floor seed
INSERT INTO tables (number, x, y, width, height, shape, capacity)
VALUES ('1', 20, 20, 100, 60, 1, 4);

INSERT INTO tables (number, x, y, width, height, shape, capacity) VALUES ('2', 200, 20, 80, 80, 0, 6);
`
	statements := SplitStatements(script)
	require.Len(t, statements, 2)
	assert.Contains(t, statements[0], "VALUES ('1'")
	assert.NotContains(t, statements[0], ";")
}

func TestExecuteScript(t *testing.T) {
	db := setupTestDB(t)
	path := filepath.Join(t.TempDir(), "setup.sql")
	script := "INSERT INTO tables (number, x, y, width, height, shape, capacity, ping, created_at, updated_at)\n" +
		"VALUES ('7', 0, 0, 100, 100, 2, 8, false, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))

	require.NoError(t, ExecuteScript(db, path))

	tables, err := NewStore(db).LoadTables()
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "7", tables[0].Number)
	assert.Equal(t, geometry.FourSidedRectangle, tables[0].Shape)

	assert.Error(t, ExecuteScript(db, filepath.Join(t.TempDir(), "missing.sql")))
}
