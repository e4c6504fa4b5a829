package services

import (
	"errors"

	"github.com/PepsTwist/app-nutricionista/models"

	"gorm.io/gorm"
)

type AnamnesisService struct {
	db *gorm.DB
}

func NewAnamnesisService(db *gorm.DB) *AnamnesisService {
	return &AnamnesisService{db: db}
}

// AnamnesisInput updates only the fields that are present; absent fields
// keep their stored value.
type AnamnesisInput struct {
	MainComplaint           *string
	HistoryOfCurrentIllness *string
	PastMedicalHistory      *string
	FamilyHistory           *string
	Lifestyle               *string
	DietaryHistory          *string
}

// CreateOrUpdate upserts the patient's single anamnesis row. The first
// write creates it; later writes merge into the same row.
func (s *AnamnesisService) CreateOrUpdate(patientID, nutritionistID string, input AnamnesisInput) (*models.Anamnesis, error) {
	var patient models.Patient
	err := s.db.Where("id = ? AND nutritionist_id = ?", patientID, nutritionistID).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var anamnesis models.Anamnesis
	err = s.db.Where("patient_id = ?", patientID).First(&anamnesis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		anamnesis = models.Anamnesis{PatientID: patientID}
	} else if err != nil {
		return nil, err
	}

	if input.MainComplaint != nil {
		anamnesis.MainComplaint = input.MainComplaint
	}
	if input.HistoryOfCurrentIllness != nil {
		anamnesis.HistoryOfCurrentIllness = input.HistoryOfCurrentIllness
	}
	if input.PastMedicalHistory != nil {
		anamnesis.PastMedicalHistory = input.PastMedicalHistory
	}
	if input.FamilyHistory != nil {
		anamnesis.FamilyHistory = input.FamilyHistory
	}
	if input.Lifestyle != nil {
		anamnesis.Lifestyle = input.Lifestyle
	}
	if input.DietaryHistory != nil {
		anamnesis.DietaryHistory = input.DietaryHistory
	}

	if err := s.db.Save(&anamnesis).Error; err != nil {
		return nil, err
	}
	return &anamnesis, nil
}

func (s *AnamnesisService) FindByPatient(patientID, nutritionistID string) (*models.Anamnesis, error) {
	var patient models.Patient
	err := s.db.Where("id = ? AND nutritionist_id = ?", patientID, nutritionistID).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var anamnesis models.Anamnesis
	err = s.db.Where("patient_id = ?", patientID).First(&anamnesis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &anamnesis, nil
}
