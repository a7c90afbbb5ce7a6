// controllers/session.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naver-booking-notifier/utils"
)

// RefreshSession tears down the browser and re-initializes it from the
// saved profile. Used after re-saving the Naver login.
func RefreshSession(c *gin.Context) {
	if err := session.Refresh(c.Request.Context()); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}
