package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeightRecord is written by the patient only and immutable afterwards,
// except for deletion.
type WeightRecord struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Weight     float64   `gorm:"not null" json:"weight"`
	RecordDate time.Time `gorm:"type:date;not null" json:"recordDate"`

	PatientID string `gorm:"type:uuid;not null;index" json:"patientId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (w *WeightRecord) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
