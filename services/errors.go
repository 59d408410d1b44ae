package services

import "errors"

var (
	ErrTableNotFound    = errors.New("table not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrInvalidSize      = errors.New("table width and height must be positive")
	ErrInvalidShape     = errors.New("unknown table shape")
	ErrInvalidNumber    = errors.New("table number must not be empty")
	ErrInvalidStatus    = errors.New("unknown booking status")
	ErrStatusRegression = errors.New("booking status cannot move backwards")
	ErrBookingClosed    = errors.New("booking is already completed")
	ErrBookingSeated    = errors.New("booking is already seated")
	ErrLoopStopped      = errors.New("floor engine is stopped")
)
