package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-floor/models"
)

// Store persists the floor through gorm.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Migrate creates or updates the floor schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Staff{},
		&models.Table{},
		&models.Booking{},
	)
}

func (s *Store) LoadTables() ([]models.Table, error) {
	var tables []models.Table
	if err := s.DB.Order("id").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *Store) LoadBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.Order("arrival, id").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Store) LoadStaff() ([]models.Staff, error) {
	var staff []models.Staff
	if err := s.DB.Order("id").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Store) InsertTable(table *models.Table) error {
	return s.DB.Create(table).Error
}

func (s *Store) UpdateTable(table *models.Table) error {
	return s.DB.Model(&models.Table{}).
		Where("id = ?", table.ID).
		Updates(map[string]interface{}{
			"number":   table.Number,
			"x":        table.X,
			"y":        table.Y,
			"width":    table.Width,
			"height":   table.Height,
			"shape":    table.Shape,
			"capacity": table.Capacity,
			"ping":     table.Ping,
		}).Error
}

func (s *Store) DeleteTable(id uint) error {
	return s.DB.Delete(&models.Table{}, id).Error
}

func (s *Store) InsertBooking(booking *models.Booking) error {
	return s.DB.Create(booking).Error
}

func (s *Store) UpdateBooking(booking *models.Booking) error {
	return s.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("arrival", booking.Arrival).Error
}

func (s *Store) DeleteBooking(id uint) error {
	return s.DB.Delete(&models.Booking{}, id).Error
}

func (s *Store) SetBookingStatus(id uint, status models.BookingStatus) error {
	return s.DB.Model(&models.Booking{}).Where("id = ?", id).Update("status", status).Error
}

func (s *Store) SetBookingStaff(id uint, staffID *uint) error {
	return s.DB.Model(&models.Booking{}).Where("id = ?", id).Update("staff_id", staffID).Error
}

func (s *Store) SetBookingSince(id uint, since time.Time) error {
	return s.DB.Model(&models.Booking{}).Where("id = ?", id).Update("status_since", since).Error
}

func (s *Store) InsertStaff(staff *models.Staff) error {
	return s.DB.Create(staff).Error
}

func (s *Store) UpdateStaff(staff *models.Staff) error {
	return s.DB.Model(&models.Staff{}).
		Where("id = ?", staff.ID).
		Updates(map[string]interface{}{
			"first_name": staff.FirstName,
			"last_name":  staff.LastName,
			"phone":      staff.Phone,
			"admin":      staff.Admin,
			"password":   staff.Password,
		}).Error
}

func (s *Store) SetStaffPresent(id uint, present bool) error {
	return s.DB.Model(&models.Staff{}).Where("id = ?", id).Update("present", present).Error
}

// CountStaff is used on first run to decide whether to seed an administrator.
func (s *Store) CountStaff() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Staff{}).Count(&count).Error
	return count, err
}
