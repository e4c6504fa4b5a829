package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Anamnesis is the clinical intake record. At most one row exists per
// patient; writes after the first update the same row.
type Anamnesis struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	MainComplaint           *string `gorm:"type:text" json:"mainComplaint"`
	HistoryOfCurrentIllness *string `gorm:"type:text" json:"historyOfCurrentIllness"`
	PastMedicalHistory      *string `gorm:"type:text" json:"pastMedicalHistory"`
	FamilyHistory           *string `gorm:"type:text" json:"familyHistory"`
	Lifestyle               *string `gorm:"type:text" json:"lifestyle"`
	DietaryHistory          *string `gorm:"type:text" json:"dietaryHistory"`

	PatientID string `gorm:"type:uuid;not null;uniqueIndex" json:"patientId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Anamnesis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
