// controllers/runs.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"naver-booking-notifier/models"
	"naver-booking-notifier/utils"
)

const defaultRunListLimit = 10

// ListRuns returns recent run logs, most recent first.
func ListRuns(c *gin.Context) {
	limit := defaultRunListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	runs, err := store.ListRecent(limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to list runs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(runs), "runs": runs})
}

// LatestRun returns the most recent run log.
func LatestRun(c *gin.Context) {
	run, err := store.Latest()
	if err != nil {
		if errors.Is(err, models.ErrRunNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No run has been recorded yet")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read latest run")
		return
	}

	c.JSON(http.StatusOK, run)
}
