package controllers

import (
	"net/http"
	"os"
	"strings"

	"nutrilog/utils"

	"github.com/gin-gonic/gin"
)

type SessionInput struct {
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

// CreateSession is the shared-password gate. The app has no user accounts:
// everyone shares APP_PASSWORD and identifies themselves by a free-text
// display name; ADMIN_PASSWORD additionally unlocks the dashboard routes.
func CreateSession(c *gin.Context) {
	var input SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appPassword := os.Getenv("APP_PASSWORD")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if appPassword == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: APP_PASSWORD not set"})
		return
	}

	admin := adminPassword != "" && input.Password == adminPassword
	if !admin && input.Password != appPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "パスワードが違います"})
		return
	}

	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "display_name must not be blank"})
		return
	}

	token, err := utils.GenerateSessionToken(name, admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "display_name": name, "admin": admin})
}
