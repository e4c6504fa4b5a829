package services

import (
	"errors"

	"github.com/PepsTwist/app-nutricionista/models"
	"github.com/PepsTwist/app-nutricionista/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// LoginResult carries either a session token or, for patients that still
// have to replace their first password, a short-lived reset token.
type LoginResult struct {
	AccessToken   string
	ResetRequired bool
	ResetToken    string
	Email         string
}

// Login matches the credentials against the nutritionist table first and
// the patient table second. Every failure collapses into
// ErrInvalidCredentials so callers cannot probe which accounts exist.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if utils.CheckPasswordHash(password, user.Password) {
			token, err := utils.GenerateSessionToken(user.ID, user.Email, utils.UserTypeNutritionist)
			if err != nil {
				return nil, err
			}
			return &LoginResult{AccessToken: token}, nil
		}
		// Wrong password for a nutritionist still falls through to the
		// patient table; the same address may exist on both sides.
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var patient models.Patient
	err = s.db.Where("email = ?", email).First(&patient).Error
	if err == nil {
		if utils.CheckPasswordHash(password, patient.Password) {
			if patient.Status == models.PatientStatusResetRequired {
				resetToken, err := utils.GenerateResetToken(patient.ID)
				if err != nil {
					return nil, err
				}
				return &LoginResult{
					ResetRequired: true,
					ResetToken:    resetToken,
					Email:         patient.Email,
				}, nil
			}

			token, err := utils.GenerateSessionToken(patient.ID, patient.Email, utils.UserTypePatient)
			if err != nil {
				return nil, err
			}
			return &LoginResult{AccessToken: token}, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, ErrInvalidCredentials
}
