package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietPlan is the aggregate root for a patient's meal schedule. Meals are
// never edited in place: updates replace the whole meal tree.
type DietPlan struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	IsActive    bool    `json:"isActive"`

	NutritionistID string `gorm:"type:uuid;not null;index" json:"nutritionistId"`
	PatientID      string `gorm:"type:uuid;not null;index" json:"patientId"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Meals   []Meal   `gorm:"foreignKey:DietPlanID;constraint:OnDelete:CASCADE" json:"meals"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *DietPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Meal struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Time string `gorm:"not null" json:"time"`

	// Nullable so rows created before the field existed keep loading.
	DayOfWeek *string `json:"dayOfWeek"`

	DietPlanID string `gorm:"type:uuid;not null;index" json:"dietPlanId"`

	Items []MealItem `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"items"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type MealItem struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Description string  `gorm:"not null" json:"description"`
	Quantity    string  `gorm:"not null" json:"quantity"`
	Notes       *string `gorm:"type:text" json:"notes"`

	MealID string `gorm:"type:uuid;not null;index" json:"mealId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *MealItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
