package models

import "time"

type Staff struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100)" json:"last_name"`
	Phone     string `gorm:"type:varchar(30)" json:"phone"`
	Admin     bool   `gorm:"not null;default:false" json:"admin"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Present   bool   `gorm:"not null;default:false" json:"present"`

	// Number of tables currently assigned. Rebuilt from attachments, never stored.
	Workload int `gorm:"-" json:"workload"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Staff) Name() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
