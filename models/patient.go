package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient account statuses. A patient is created with a password chosen by
// the nutritionist and must replace it on first login; the status moves to
// ACTIVE exactly once and never back.
const (
	PatientStatusResetRequired = "PASSWORD_RESET_REQUIRED"
	PatientStatusActive        = "ACTIVE"
)

type Patient struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string     `gorm:"not null" json:"fullName"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	BirthDate *time.Time `gorm:"type:date" json:"birthDate,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Status    string     `gorm:"not null" json:"status"`

	// Ownership is fixed at creation and never reassigned.
	NutritionistID string `gorm:"type:uuid;not null;index" json:"nutritionistId"`

	Anamnesis     *Anamnesis     `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"anamnesis,omitempty"`
	DietPlans     []DietPlan     `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"dietPlans,omitempty"`
	WeightRecords []WeightRecord `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"weightRecords,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
