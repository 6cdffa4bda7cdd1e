package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// ValidBookingStatus reports whether status is a recognized booking status.
func ValidBookingStatus(status string) bool {
	switch status {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type Booking struct {
	gorm.Model
	UserID    int       `json:"userId"`
	ServiceID int       `json:"serviceId"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status" gorm:"default:PENDING"`
	Notes     string    `json:"notes"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Service   Service   `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}
