package controllers

import (
	"errors"
	"net/http"

	"github.com/PepsTwist/app-nutricionista/config"
	"github.com/PepsTwist/app-nutricionista/logger"
	"github.com/PepsTwist/app-nutricionista/middlewares"
	"github.com/PepsTwist/app-nutricionista/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates either principal type. Patients that still carry
// their initial password get a reset token instead of a session, flagged
// with statusCode 403 in the body so clients branch into the forced-reset
// screen.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewAuthService(config.DB)
	result, err := svc.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process login"})
		return
	}

	if result.ResetRequired {
		c.JSON(http.StatusOK, gin.H{
			"statusCode":  http.StatusForbidden,
			"message":     "Password reset required",
			"reset_token": result.ResetToken,
			"email":       result.Email,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": result.AccessToken})
}

// GetProfile returns the logged-in nutritionist.
func GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, middlewares.CurrentNutritionist(c))
}

// GetMe returns the logged-in patient with plans and weight history, the
// shape the patient dashboard consumes in one request.
func GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, middlewares.CurrentPatient(c))
}
