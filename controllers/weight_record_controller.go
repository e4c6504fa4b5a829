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

type CreateWeightRecordInput struct {
	Weight     float64 `json:"weight" binding:"required,gt=0"`
	RecordDate string  `json:"recordDate" binding:"required"`
}

// CreateWeightRecord logs a measurement for the logged-in patient.
func CreateWeightRecord(c *gin.Context) {
	var input CreateWeightRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordDate, err := time.Parse("2006-01-02", input.RecordDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recordDate must be YYYY-MM-DD"})
		return
	}

	patient := middlewares.CurrentPatient(c)
	svc := services.NewWeightRecordService(config.DB)
	record, err := svc.Create(patient.ID, input.Weight, recordDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create weight record"})
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListWeightRecords returns a patient's history ascending by date. Either
// the patient themselves or their nutritionist may call it; the service
// checks the chain for whichever role arrives.
func ListWeightRecords(c *gin.Context) {
	callerID, callerType := middlewares.Caller(c)
	svc := services.NewWeightRecordService(config.DB)
	records, err := svc.ListForPatient(c.Param("patientId"), callerID, callerType)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list weight records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// DeleteWeightRecord removes one of the logged-in patient's own records.
func DeleteWeightRecord(c *gin.Context) {
	patient := middlewares.CurrentPatient(c)
	svc := services.NewWeightRecordService(config.DB)
	if err := svc.Delete(c.Param("id"), patient.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "weight record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete weight record"})
		return
	}
	c.Status(http.StatusNoContent)
}
