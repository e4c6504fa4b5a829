package services

import (
	"errors"

	"github.com/PepsTwist/app-nutricionista/logger"
	"github.com/PepsTwist/app-nutricionista/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DietService struct {
	db *gorm.DB
}

func NewDietService(db *gorm.DB) *DietService {
	return &DietService{db: db}
}

type MealItemInput struct {
	Description string
	Quantity    string
	Notes       *string
}

type MealInput struct {
	Name      string
	Time      string
	DayOfWeek string
	Items     []MealItemInput
}

type CreateDietPlanInput struct {
	Name        string
	Description *string
	PatientID   string
	Meals       []MealInput
}

// UpdateDietPlanInput replaces the whole meal tree. An empty or omitted
// Meals list leaves the plan with zero meals after the update; there is no
// "keep existing meals" variant.
type UpdateDietPlanInput struct {
	Name        *string
	Description *string
	IsActive    *bool
	Meals       []MealInput
}

// buildMeals maps meal specs onto new rows for the given plan. Ids are
// assigned on insert, so every call yields a fresh tree.
func buildMeals(specs []MealInput, planID string) []models.Meal {
	meals := make([]models.Meal, 0, len(specs))
	for _, spec := range specs {
		day := spec.DayOfWeek
		meal := models.Meal{
			Name:       spec.Name,
			Time:       spec.Time,
			DayOfWeek:  &day,
			DietPlanID: planID,
		}
		for _, item := range spec.Items {
			meal.Items = append(meal.Items, models.MealItem{
				Description: item.Description,
				Quantity:    item.Quantity,
				Notes:       item.Notes,
			})
		}
		meals = append(meals, meal)
	}
	return meals
}

// Create persists a plan with its nested meal tree for one of the
// nutritionist's patients and returns it fully loaded.
func (s *DietService) Create(input CreateDietPlanInput, nutritionistID string) (*models.DietPlan, error) {
	var patient models.Patient
	err := s.db.Where("id = ? AND nutritionist_id = ?", input.PatientID, nutritionistID).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	plan := models.DietPlan{
		Name:           input.Name,
		Description:    input.Description,
		IsActive:       true,
		NutritionistID: nutritionistID,
		PatientID:      patient.ID,
	}
	if err := s.db.Create(&plan).Error; err != nil {
		return nil, err
	}

	if len(input.Meals) > 0 {
		meals := buildMeals(input.Meals, plan.ID)
		if err := s.db.Create(&meals).Error; err != nil {
			return nil, err
		}
	}

	return s.FindOne(plan.ID, nutritionistID)
}

// FindOne loads a plan with patient, meals and items, meals ordered by
// their time of day.
func (s *DietService) FindOne(planID, nutritionistID string) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := s.db.
		Preload("Patient").
		Preload("Meals", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("meals.time ASC")
		}).
		Preload("Meals.Items").
		Where("id = ? AND nutritionist_id = ?", planID, nutritionistID).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListByPatient returns the plans a nutritionist authored for one of their
// patients, newest first.
func (s *DietService) ListByPatient(patientID, nutritionistID string) ([]models.DietPlan, error) {
	var plans []models.DietPlan
	err := s.db.
		Where("patient_id = ? AND nutritionist_id = ?", patientID, nutritionistID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// ListMine returns plan summaries for the logged-in patient.
func (s *DietService) ListMine(patientID string) ([]models.DietPlan, error) {
	var plans []models.DietPlan
	err := s.db.
		Select("id", "name", "description", "is_active", "created_at").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// FindMine loads one of the logged-in patient's own plans with its meal
// tree.
func (s *DietService) FindMine(planID, patientID string) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := s.db.
		Preload("Meals", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("meals.time ASC")
		}).
		Preload("Meals.Items").
		Where("id = ? AND patient_id = ?", planID, patientID).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update applies scalar changes and replaces the meal tree in one
// transaction: every existing meal is deleted (items cascade with them)
// and whatever the input supplies is inserted as brand-new rows. A failure
// anywhere rolls the whole thing back, leaving the previous tree intact.
func (s *DietService) Update(planID string, input UpdateDietPlanInput, nutritionistID string) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := s.db.Where("id = ? AND nutritionist_id = ?", planID, nutritionistID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("diet_plan_id = ?", planID).Delete(&models.Meal{}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.DietPlan{}).Where("id = ?", planID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if len(input.Meals) > 0 {
			meals := buildMeals(input.Meals, planID)
			if err := tx.Create(&meals).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("diet plan update rolled back", zap.String("planId", planID), zap.Error(err))
		return nil, err
	}

	return s.FindOne(planID, nutritionistID)
}

// Delete removes a plan after the ownership check; meals and items cascade
// away with it. A plan that vanished between check and delete is reported
// as not found, which callers treat the same as an already-deleted plan.
func (s *DietService) Delete(planID, nutritionistID string) error {
	var plan models.DietPlan
	err := s.db.Where("id = ? AND nutritionist_id = ?", planID, nutritionistID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	result := s.db.Where("id = ?", planID).Delete(&models.DietPlan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
