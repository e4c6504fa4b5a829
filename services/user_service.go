package services

import (
	"errors"

	"github.com/PepsTwist/app-nutricionista/models"
	"github.com/PepsTwist/app-nutricionista/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a nutritionist account. Duplicate e-mails surface as
// ErrEmailInUse.
func (s *UserService) Register(fullName, email, password, crn string) (*models.User, error) {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FullName: fullName,
		Email:    email,
		Password: hashed,
		CRN:      crn,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
