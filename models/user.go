package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a nutritionist account. Patients and their plans hang off it.
type User struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string `gorm:"not null" json:"fullName"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	CRN      string `gorm:"not null" json:"crn"`

	Patients  []Patient  `gorm:"foreignKey:NutritionistID;constraint:OnDelete:CASCADE" json:"patients,omitempty"`
	DietPlans []DietPlan `gorm:"foreignKey:NutritionistID" json:"dietPlans,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
