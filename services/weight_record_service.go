package services

import (
	"errors"
	"time"

	"github.com/PepsTwist/app-nutricionista/models"
	"github.com/PepsTwist/app-nutricionista/utils"

	"gorm.io/gorm"
)

type WeightRecordService struct {
	db *gorm.DB
}

func NewWeightRecordService(db *gorm.DB) *WeightRecordService {
	return &WeightRecordService{db: db}
}

// Create logs a weight measurement for the logged-in patient. Records are
// immutable once written; the only later operation is deletion.
func (s *WeightRecordService) Create(patientID string, weight float64, recordDate time.Time) (*models.WeightRecord, error) {
	record := models.WeightRecord{
		Weight:     weight,
		RecordDate: recordDate,
		PatientID:  patientID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListForPatient returns a patient's weight history in ascending date
// order. Both caller roles are checked against the ownership chain: a
// patient only reads their own history, a nutritionist only that of their
// own patients.
func (s *WeightRecordService) ListForPatient(patientID, callerID, callerType string) ([]models.WeightRecord, error) {
	switch callerType {
	case utils.UserTypePatient:
		if callerID != patientID {
			return nil, ErrNotFound
		}
	case utils.UserTypeNutritionist:
		var patient models.Patient
		err := s.db.Where("id = ? AND nutritionist_id = ?", patientID, callerID).First(&patient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrNotFound
	}

	var records []models.WeightRecord
	err := s.db.
		Where("patient_id = ?", patientID).
		Order("record_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes one of the patient's own records; anything outside their
// ownership is reported as missing.
func (s *WeightRecordService) Delete(recordID, patientID string) error {
	result := s.db.Where("id = ? AND patient_id = ?", recordID, patientID).Delete(&models.WeightRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
