package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/PepsTwist/app-nutricionista/config"
	"github.com/PepsTwist/app-nutricionista/middlewares"
	"github.com/PepsTwist/app-nutricionista/services"

	"github.com/gin-gonic/gin"
)

type CreatePatientInput struct {
	FullName  string  `json:"fullName" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	BirthDate *string `json:"birthDate"`
	Phone     *string `json:"phone"`
}

type UpdatePatientInput struct {
	FullName  *string `json:"fullName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	BirthDate *string `json:"birthDate"`
	Phone     *string `json:"phone"`
}

type ResetPasswordInput struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// CreatePatient registers a patient under the logged-in nutritionist.
func CreatePatient(c *gin.Context) {
	var input CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthDate, err := parseBirthDate(input.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birthDate must be YYYY-MM-DD"})
		return
	}

	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewPatientService(config.DB)
	patient, err := svc.Create(services.CreatePatientInput{
		FullName:  input.FullName,
		Email:     input.Email,
		Password:  input.Password,
		BirthDate: birthDate,
		Phone:     input.Phone,
	}, nutritionist.ID)
	if err != nil {
		if errors.Is(err, services.ErrEmailInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create patient"})
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// ListPatients returns the caller's patients ordered by name.
func ListPatients(c *gin.Context) {
	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewPatientService(config.DB)
	patients, err := svc.List(nutritionist.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list patients"})
		return
	}
	c.JSON(http.StatusOK, patients)
}

// GetPatient returns one of the caller's patients with plans, anamnesis
// and weight history attached.
func GetPatient(c *gin.Context) {
	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewPatientService(config.DB)
	patient, err := svc.FindOne(c.Param("id"), nutritionist.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load patient"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

// UpdatePatient applies a partial update to one of the caller's patients.
func UpdatePatient(c *gin.Context) {
	var input UpdatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthDate, err := parseBirthDate(input.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birthDate must be YYYY-MM-DD"})
		return
	}

	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewPatientService(config.DB)
	patient, err := svc.Update(c.Param("id"), nutritionist.ID, services.UpdatePatientInput{
		FullName:  input.FullName,
		Email:     input.Email,
		Password:  input.Password,
		BirthDate: birthDate,
		Phone:     input.Phone,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update patient"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

// DeletePatient removes one of the caller's patients; plans, anamnesis and
// weight records cascade away with the row.
func DeletePatient(c *gin.Context) {
	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewPatientService(config.DB)
	if err := svc.Delete(c.Param("id"), nutritionist.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete patient"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetMyPassword consumes a reset token: the patient picks their own
// password and the account flips to ACTIVE.
func ResetMyPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient := middlewares.CurrentPatient(c)
	svc := services.NewPatientService(config.DB)
	if err := svc.ResetPassword(patient.ID, input.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
