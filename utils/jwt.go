package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal types carried in the userType claim of session tokens. Reset
// tokens carry an action claim instead and are never usable as sessions.
const (
	UserTypeNutritionist = "nutritionist"
	UserTypePatient      = "patient"
	ActionResetPassword  = "reset_password"
)

const (
	sessionTokenLifespan = 24 * time.Hour
	resetTokenLifespan   = 15 * time.Minute
)

var ErrInvalidToken = errors.New("invalid token")

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateSessionToken signs a 1-day session token for a nutritionist or
// patient principal.
func GenerateSessionToken(id, email, userType string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"email":    email,
		"userType": userType,
		"exp":      time.Now().Add(sessionTokenLifespan).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// GenerateResetToken signs a short-lived token that only the password-reset
// route accepts.
func GenerateResetToken(patientID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":     patientID,
		"action": ActionResetPassword,
		"exp":    time.Now().Add(resetTokenLifespan).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// ParseToken verifies signature, signing method and expiry, returning the
// claim set. Which claim shape is acceptable is the caller's decision.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SessionIdentity extracts the principal id from session claims, rejecting
// any token whose userType differs from the expected one.
func SessionIdentity(claims jwt.MapClaims, expectedUserType string) (string, error) {
	userType, _ := claims["userType"].(string)
	if userType != expectedUserType {
		return "", ErrInvalidToken
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}

// ResetIdentity extracts the patient id from reset claims, rejecting
// session tokens.
func ResetIdentity(claims jwt.MapClaims) (string, error) {
	action, _ := claims["action"].(string)
	if action != ActionResetPassword {
		return "", ErrInvalidToken
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}
