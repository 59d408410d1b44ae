package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/now"

	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

// ArrivalLayout is the booking time format accepted from the front desk.
const ArrivalLayout = "2006-01-02 15:04"

type BookingController struct {
	Engine   *services.Engine
	Location *time.Location
	Clock    services.Clock
}

func NewBookingController(engine *services.Engine) *BookingController {
	return &BookingController{Engine: engine, Location: time.Local, Clock: time.Now}
}

type bookingRequest struct {
	TableID uint   `json:"table_id" binding:"required"`
	Arrival string `json:"arrival" binding:"required"`
}

// parseArrival accepts "YYYY-MM-DD HH:MM" in the restaurant's time zone, or RFC 3339.
func (bc *BookingController) parseArrival(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(ArrivalLayout, raw, bc.Location); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("arrival must look like %q", ArrivalLayout)
}

func (bc *BookingController) futureArrival(c *gin.Context, raw string) (time.Time, bool) {
	arrival, err := bc.parseArrival(raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return time.Time{}, false
	}
	if !arrival.After(bc.Clock()) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("arrival must be in the future"))
		return time.Time{}, false
	}
	return arrival, true
}

// GetBookings lists every booking, or those of one day with ?date=YYYY-MM-DD.
func (bc *BookingController) GetBookings(c *gin.Context) {
	var (
		from, to time.Time
		filtered bool
	)
	if raw := c.Query("date"); raw != "" {
		day, err := time.ParseInLocation(time.DateOnly, raw, bc.Location)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("date must look like 2006-01-02"))
			return
		}
		from = now.With(day).BeginningOfDay()
		to = now.With(day).EndOfDay().Add(time.Nanosecond)
		filtered = true
	}

	var bookings []models.Booking
	err := bc.Engine.Do(func() error {
		list := bc.Engine.Registry.Bookings()
		if filtered {
			list = bc.Engine.Registry.BookingsBetween(from, to)
		}
		bookings = make([]models.Booking, 0, len(list))
		for _, b := range list {
			bookings = append(bookings, *b)
		}
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	bc.respondBooking(c, "Booking details", func(uint) error { return nil })
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	arrival, ok := bc.futureArrival(c, req.Arrival)
	if !ok {
		return
	}

	var booking models.Booking
	err := bc.Engine.Do(func() error {
		b, err := bc.Engine.Registry.AddBooking(req.TableID, arrival)
		if err != nil {
			return err
		}
		booking = *b
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully", booking)
}

// UpdateBooking moves the arrival time. Bookings stay on the table they were made for.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	var req struct {
		Arrival string `json:"arrival" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	arrival, ok := bc.futureArrival(c, req.Arrival)
	if !ok {
		return
	}
	bc.respondBooking(c, "Booking updated", func(id uint) error {
		_, err := bc.Engine.Registry.Reschedule(id, arrival)
		return err
	})
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c, "booking_id")
	if !ok {
		return
	}
	if err := bc.Engine.Do(func() error { return bc.Engine.Registry.DeleteBooking(id) }); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking deleted successfully", nil)
}

func (bc *BookingController) SetStatus(c *gin.Context) {
	var req struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	bc.respondBooking(c, "Booking status updated", func(id uint) error {
		_, err := bc.Engine.Lifecycle.Set(id, req.Status)
		return err
	})
}

func (bc *BookingController) NextStatus(c *gin.Context) {
	bc.respondBooking(c, "Booking status advanced", func(id uint) error {
		_, err := bc.Engine.Lifecycle.Next(id)
		return err
	})
}

func (bc *BookingController) respondBooking(c *gin.Context, message string, change func(id uint) error) {
	id, ok := parseID(c, "booking_id")
	if !ok {
		return
	}

	var booking models.Booking
	err := bc.Engine.Do(func() error {
		if err := change(id); err != nil {
			return err
		}
		b, err := bc.Engine.Registry.Booking(id)
		if err != nil {
			return err
		}
		booking = *b
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, booking)
}
