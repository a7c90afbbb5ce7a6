// controllers/auth.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naver-booking-notifier/utils"
)

type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// Login authenticates the single operator account against the bcrypt hash
// from the environment and issues a JWT for the /api routes.
func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.CheckPasswordHash(input.Password, cfg.AdminPasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken("operator")
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
