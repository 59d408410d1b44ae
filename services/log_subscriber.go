package services

import (
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floor/utils"
)

// LogSubscriber writes floor events to the info logger. Ping events are
// logged at debug level only since they fire twice a second.
type LogSubscriber struct{}

func (LogSubscriber) Notify(event Event) {
	fields := logrus.Fields{"event": event.Type}
	if event.TableID != 0 {
		fields["table_id"] = event.TableID
	}
	if event.BookingID != 0 {
		fields["booking_id"] = event.BookingID
	}
	if event.StaffID != 0 {
		fields["staff_id"] = event.StaffID
	}

	entry := utils.InfoLogger.WithFields(fields)
	switch event.Type {
	case EventPing:
		entry.Debug("Floor event")
	case EventClash:
		if event.Clash != nil {
			entry = entry.WithField("table_number", event.Clash.TableNumber)
		}
		entry.Warn("Floor event")
	default:
		entry.Info("Floor event")
	}
}
