package controllers

import (
	"errors"
	"net/http"

	"github.com/PepsTwist/app-nutricionista/config"
	"github.com/PepsTwist/app-nutricionista/middlewares"
	"github.com/PepsTwist/app-nutricionista/services"

	"github.com/gin-gonic/gin"
)

// AnamnesisInput carries the six clinical free-text fields; absent fields
// are left untouched on update.
type AnamnesisInput struct {
	MainComplaint           *string `json:"mainComplaint"`
	HistoryOfCurrentIllness *string `json:"historyOfCurrentIllness"`
	PastMedicalHistory      *string `json:"pastMedicalHistory"`
	FamilyHistory           *string `json:"familyHistory"`
	Lifestyle               *string `json:"lifestyle"`
	DietaryHistory          *string `json:"dietaryHistory"`
}

// UpsertAnamnesis writes the patient's single anamnesis record, creating
// it on first write.
func UpsertAnamnesis(c *gin.Context) {
	var input AnamnesisInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewAnamnesisService(config.DB)
	anamnesis, err := svc.CreateOrUpdate(c.Param("patientId"), nutritionist.ID, services.AnamnesisInput{
		MainComplaint:           input.MainComplaint,
		HistoryOfCurrentIllness: input.HistoryOfCurrentIllness,
		PastMedicalHistory:      input.PastMedicalHistory,
		FamilyHistory:           input.FamilyHistory,
		Lifestyle:               input.Lifestyle,
		DietaryHistory:          input.DietaryHistory,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save anamnesis"})
		return
	}
	c.JSON(http.StatusCreated, anamnesis)
}

// GetAnamnesis fetches the anamnesis of one of the caller's patients.
func GetAnamnesis(c *gin.Context) {
	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewAnamnesisService(config.DB)
	anamnesis, err := svc.FindByPatient(c.Param("patientId"), nutritionist.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "anamnesis not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load anamnesis"})
		return
	}
	c.JSON(http.StatusOK, anamnesis)
}
