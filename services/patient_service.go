package services

import (
	"errors"
	"time"

	"github.com/PepsTwist/app-nutricionista/models"
	"github.com/PepsTwist/app-nutricionista/utils"

	"gorm.io/gorm"
)

type PatientService struct {
	db *gorm.DB
}

func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{db: db}
}

type CreatePatientInput struct {
	FullName  string
	Email     string
	Password  string
	BirthDate *time.Time
	Phone     *string
}

type UpdatePatientInput struct {
	FullName  *string
	Email     *string
	Password  *string
	BirthDate *time.Time
	Phone     *string
}

// Create registers a patient under the given nutritionist. The account
// starts in PASSWORD_RESET_REQUIRED: the patient must replace the password
// the nutritionist chose before getting a session.
func (s *PatientService) Create(input CreatePatientInput, nutritionistID string) (*models.Patient, error) {
	var existing models.Patient
	err := s.db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	patient := models.Patient{
		FullName:       input.FullName,
		Email:          input.Email,
		Password:       hashed,
		BirthDate:      input.BirthDate,
		Phone:          input.Phone,
		Status:         models.PatientStatusResetRequired,
		NutritionistID: nutritionistID,
	}
	if err := s.db.Create(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// List returns the nutritionist's patients ordered by name.
func (s *PatientService) List(nutritionistID string) ([]models.Patient, error) {
	var patients []models.Patient
	err := s.db.
		Where("nutritionist_id = ?", nutritionistID).
		Order("full_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// FindOne loads one of the nutritionist's patients with the clinical
// relations attached. A patient outside the caller's ownership chain is
// indistinguishable from a missing one.
func (s *PatientService) FindOne(id, nutritionistID string) (*models.Patient, error) {
	var patient models.Patient
	err := s.db.
		Preload("DietPlans").
		Preload("Anamnesis").
		Preload("WeightRecords").
		Where("id = ? AND nutritionist_id = ?", id, nutritionistID).
		First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (s *PatientService) Update(id, nutritionistID string, input UpdatePatientInput) (*models.Patient, error) {
	var patient models.Patient
	err := s.db.Where("id = ? AND nutritionist_id = ?", id, nutritionistID).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		patient.FullName = *input.FullName
	}
	if input.Email != nil {
		patient.Email = *input.Email
	}
	if input.BirthDate != nil {
		patient.BirthDate = input.BirthDate
	}
	if input.Phone != nil {
		patient.Phone = input.Phone
	}
	if input.Password != nil {
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		patient.Password = hashed
	}

	if err := s.db.Save(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (s *PatientService) Delete(id, nutritionistID string) error {
	result := s.db.Where("id = ? AND nutritionist_id = ?", id, nutritionistID).Delete(&models.Patient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetPassword replaces the patient's password and activates the account.
// The status transition is one-way: nothing ever moves a patient back to
// PASSWORD_RESET_REQUIRED.
func (s *PatientService) ResetPassword(patientID, newPassword string) error {
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	result := s.db.Model(&models.Patient{}).
		Where("id = ?", patientID).
		Updates(map[string]interface{}{
			"password": hashed,
			"status":   models.PatientStatusActive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
