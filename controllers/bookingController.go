package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/initializers"
	"github.com/lashup/lashup-api/middlewares"
	"github.com/lashup/lashup-api/models"
	"github.com/lashup/lashup-api/services"
	"gorm.io/gorm"
)

// cancellationWindow is how far ahead of the appointment a user may still
// cancel it.
const cancellationWindow = 24 * time.Hour

var errSlotTaken = errors.New("slot taken")

// parseBookingDate composes the date and optional time fields into one
// instant.
func parseBookingDate(date, timeOfDay string) (time.Time, error) {
	if timeOfDay != "" {
		return time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, time.UTC)
	}
	return time.ParseInLocation("2006-01-02", date, time.UTC)
}

// CreateBooking books a service slot for the authenticated user. The slot
// conflict check and the insert run in one transaction so two concurrent
// requests for the same slot cannot both succeed.
func CreateBooking(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	var bookingData struct {
		ServiceID int    `json:"serviceId" binding:"required"`
		Date      string `json:"date" binding:"required"`
		Time      string `json:"time"`
		Notes     string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&bookingData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Service and date are required")
		return
	}

	var service models.Service
	if err := initializers.DB.First(&service, bookingData.ServiceID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Service not found")
		return
	}

	bookingDate, err := parseBookingDate(bookingData.Date, bookingData.Time)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid date format")
		return
	}

	if !bookingDate.After(time.Now()) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Booking date must be in the future")
		return
	}

	booking := models.Booking{
		UserID:    userID,
		ServiceID: bookingData.ServiceID,
		Date:      bookingDate,
		Status:    models.BookingPending,
		Notes:     bookingData.Notes,
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.Booking{}).
			Where("service_id = ? AND date = ? AND status <> ?", bookingData.ServiceID, bookingDate, models.BookingCancelled).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return errSlotTaken
		}
		return tx.Create(&booking).Error
	})
	if errors.Is(err, errSlotTaken) {
		sendErrorResponse(ctx, http.StatusBadRequest, "This time slot is already booked")
		return
	}
	if err != nil {
		log.Println("Booking creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err == nil {
		services.NotifyAsync(
			services.AdminEmail(),
			"New Booking Received",
			fmt.Sprintf("<p><b>%s</b> (%s) booked <b>%s</b> on %s.</p>", user.Name, user.Email, service.Name, bookingDate.UTC().Format(time.RFC1123)),
		)
		services.NotifyAsync(
			user.Email,
			"Booking Confirmation",
			fmt.Sprintf("<p>Thank you for your booking, %s!</p><p>You booked <b>%s</b> on %s.</p>", user.Name, service.Name, bookingDate.UTC().Format(time.RFC1123)),
		)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Booking created", "booking": booking})
}

func GetMyBookings(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	var bookings []models.Booking
	if err := initializers.DB.Preload("Service").
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&bookings).Error; err != nil {
		log.Println("Booking listing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"bookings": bookings})
}

func GetAllBookings(ctx *gin.Context) {
	var bookings []models.Booking
	if err := initializers.DB.Preload("User").Preload("Service").
		Order("date desc").
		Find(&bookings).Error; err != nil {
		log.Println("Booking listing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking cancels the caller's own booking. Cancellation is only
// allowed while the booking is PENDING or CONFIRMED, and only up to 24 hours
// before the appointment.
func CancelBooking(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	bookingID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse booking id")
		return
	}

	var booking models.Booking
	if err := initializers.DB.Preload("User").Preload("Service").First(&booking, bookingID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Booking not found")
		return
	}

	if booking.UserID != userID {
		sendErrorResponse(ctx, http.StatusForbidden, "You can only cancel your own bookings")
		return
	}

	if booking.Status != models.BookingPending && booking.Status != models.BookingConfirmed {
		sendErrorResponse(ctx, http.StatusBadRequest, "Cannot cancel this booking")
		return
	}

	if time.Until(booking.Date) < cancellationWindow {
		sendErrorResponse(ctx, http.StatusBadRequest, "Bookings can only be cancelled at least 24 hours in advance")
		return
	}

	booking.Status = models.BookingCancelled
	if err := initializers.DB.Save(&booking).Error; err != nil {
		log.Println("Booking cancellation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	services.NotifyAsync(
		services.AdminEmail(),
		"Booking Cancelled by User",
		fmt.Sprintf("<p>User <b>%s</b> (%s) cancelled their booking for <b>%s</b> on %s.</p>", booking.User.Name, booking.User.Email, booking.Service.Name, booking.Date.UTC().Format(time.RFC1123)),
	)
	services.NotifyAsync(
		booking.User.Email,
		"Booking Cancelled",
		fmt.Sprintf("<p>Hi %s,</p><p>Your booking for <b>%s</b> on %s has been cancelled.</p>", booking.User.Name, booking.Service.Name, booking.Date.UTC().Format(time.RFC1123)),
	)

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Booking cancelled", "booking": booking})
}

// UpdateBookingStatus lets an admin move a booking to any recognized status.
func UpdateBookingStatus(ctx *gin.Context) {
	bookingID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse booking id")
		return
	}

	var statusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&statusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Status is required")
		return
	}

	status := strings.ToUpper(strings.TrimSpace(statusData.Status))
	if !models.ValidBookingStatus(status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid booking status")
		return
	}

	var booking models.Booking
	if err := initializers.DB.Preload("User").Preload("Service").First(&booking, bookingID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Booking not found")
		return
	}

	booking.Status = status
	if err := initializers.DB.Save(&booking).Error; err != nil {
		log.Println("Booking status update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	services.NotifyAsync(
		booking.User.Email,
		"Booking Status Updated",
		fmt.Sprintf("<p>Hi %s,</p><p>Your booking for <b>%s</b> on %s is now <b>%s</b>.</p>", booking.User.Name, booking.Service.Name, booking.Date.UTC().Format("Mon Jan 2 2006"), status),
	)

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Booking status updated", "booking": booking})
}
