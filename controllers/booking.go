// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"naver-booking-notifier/models"
	"naver-booking-notifier/utils"
)

// Health reports whether the browser session has been initialized yet.
func Health(c *gin.Context) {
	if !session.Ready() {
		c.JSON(http.StatusOK, gin.H{"status": "not_initialized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetTodayBookings runs an extraction-only pass over the confirmed-bookings
// view and persists the run.
func GetTodayBookings(c *gin.Context) {
	run, err := runner.ExtractToday(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrSessionExpired) {
			utils.RespondWithError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     run.Date,
		"count":    run.Count,
		"bookings": run.Bookings,
	})
}
