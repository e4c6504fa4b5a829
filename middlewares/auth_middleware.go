// middlewares/auth_middleware.go
package middlewares

import (
	"net/http"
	"strings"

	"github.com/PepsTwist/app-nutricionista/models"
	"github.com/PepsTwist/app-nutricionista/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Context keys under which the resolved principal is stored. Controllers
// read them through the typed getters below and pass plain ids into the
// services; nothing downstream re-parses the token.
const (
	ctxNutritionist = "currentNutritionist"
	ctxPatient      = "currentPatient"
	ctxCallerID     = "callerID"
	ctxCallerType   = "callerType"
)

func bearerClaims(c *gin.Context) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}
	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
}

// NutritionistAuth admits nutritionist session tokens only. The account row
// is re-loaded on every request; a token for a deleted account is rejected.
func NutritionistAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		id, err := utils.SessionIdentity(claims, utils.UserTypeNutritionist)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		var user models.User
		if err := db.Where("id = ?", id).First(&user).Error; err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxNutritionist, &user)
		c.Set(ctxCallerID, user.ID)
		c.Set(ctxCallerType, utils.UserTypeNutritionist)
		c.Next()
	}
}

// PatientAuth admits patient session tokens only. The patient is loaded
// with plans and weight history attached, which is what /auth/me serves.
func PatientAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		id, err := utils.SessionIdentity(claims, utils.UserTypePatient)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		var patient models.Patient
		err = db.
			Preload("DietPlans").
			Preload("DietPlans.Meals").
			Preload("DietPlans.Meals.Items").
			Preload("WeightRecords").
			Where("id = ?", id).
			First(&patient).Error
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxPatient, &patient)
		c.Set(ctxCallerID, patient.ID)
		c.Set(ctxCallerType, utils.UserTypePatient)
		c.Next()
	}
}

// ResetPasswordAuth admits only the short-lived reset tokens minted at
// login for patients that still have to replace their first password.
// Session tokens fail here, and reset tokens fail everywhere else.
func ResetPasswordAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		id, err := utils.ResetIdentity(claims)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		var patient models.Patient
		if err := db.Where("id = ?", id).First(&patient).Error; err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxPatient, &patient)
		c.Set(ctxCallerID, patient.ID)
		c.Set(ctxCallerType, utils.UserTypePatient)
		c.Next()
	}
}

// SessionAuth admits either session role. Used on the weight-record
// listing route, which both the patient and their nutritionist may read.
func SessionAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		if id, err := utils.SessionIdentity(claims, utils.UserTypeNutritionist); err == nil {
			var user models.User
			if err := db.Where("id = ?", id).First(&user).Error; err != nil {
				abortUnauthorized(c)
				return
			}
			c.Set(ctxNutritionist, &user)
			c.Set(ctxCallerID, user.ID)
			c.Set(ctxCallerType, utils.UserTypeNutritionist)
			c.Next()
			return
		}

		if id, err := utils.SessionIdentity(claims, utils.UserTypePatient); err == nil {
			var patient models.Patient
			if err := db.Where("id = ?", id).First(&patient).Error; err != nil {
				abortUnauthorized(c)
				return
			}
			c.Set(ctxPatient, &patient)
			c.Set(ctxCallerID, patient.ID)
			c.Set(ctxCallerType, utils.UserTypePatient)
			c.Next()
			return
		}

		abortUnauthorized(c)
	}
}

// CurrentNutritionist returns the principal attached by NutritionistAuth.
func CurrentNutritionist(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxNutritionist); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentPatient returns the principal attached by PatientAuth or
// ResetPasswordAuth.
func CurrentPatient(c *gin.Context) *models.Patient {
	if v, ok := c.Get(ctxPatient); ok {
		if patient, ok := v.(*models.Patient); ok {
			return patient
		}
	}
	return nil
}

// Caller returns the id and role attached by any of the auth middlewares.
func Caller(c *gin.Context) (id, userType string) {
	return c.GetString(ctxCallerID), c.GetString(ctxCallerType)
}
