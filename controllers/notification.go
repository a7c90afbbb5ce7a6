// controllers/notification.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"naver-booking-notifier/models"
	"naver-booking-notifier/utils"
)

type SendNotificationInput struct {
	PhoneNumber  string `json:"phone_number" binding:"required"`
	CustomerName string `json:"customer_name" binding:"required"`
	BookingTime  string `json:"booking_time" binding:"required"`
}

// SendAllNotifications runs the full batch: extract today's bookings, send
// the confirmation and schedule the reminder for each, persist the run.
func SendAllNotifications(c *gin.Context) {
	_, report, err := runner.DispatchToday(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrSessionExpired) {
			utils.RespondWithError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, report)
}

// SendNotification fires one ad-hoc confirmation message.
func SendNotification(c *gin.Context) {
	var input SendNotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := dispatcher.SendImmediate(c.Request.Context(),
		input.PhoneNumber, input.CustomerName, input.BookingTime)
	c.JSON(http.StatusOK, result)
}

// ScheduleReminder registers one ad-hoc scheduled reminder.
func ScheduleReminder(c *gin.Context) {
	var input SendNotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := dispatcher.ScheduleReminder(c.Request.Context(),
		input.PhoneNumber, input.CustomerName, input.BookingTime)
	c.JSON(http.StatusOK, result)
}

// PreviewPayloads shows what would be sent for today's bookings without
// making any provider calls.
func PreviewPayloads(c *gin.Context) {
	run, err := runner.ExtractToday(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrSessionExpired) {
			utils.RespondWithError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	type previewItem struct {
		Booking models.BookingRecord `json:"booking"`
		Payload interface{}          `json:"solapi_payload"`
	}
	payloads := make([]previewItem, 0, len(run.Bookings))
	for _, b := range run.Bookings {
		payloads = append(payloads, previewItem{
			Booking: b,
			Payload: dispatcher.ImmediateMessage(b.PhoneNumber, b.CustomerName, b.BookingTime),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(payloads),
		"payloads": payloads,
	})
}
