package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateSessionToken("user-1", "n@x.com", UserTypeNutritionist)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)

	id, err := SessionIdentity(claims, UserTypeNutritionist)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, "n@x.com", claims["email"])
}

func TestSessionTokenWrongRoleRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateSessionToken("patient-1", "p@x.com", UserTypePatient)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)

	_, err = SessionIdentity(claims, UserTypeNutritionist)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetTokenIsNotASession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateResetToken("patient-1")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)

	_, err = SessionIdentity(claims, UserTypePatient)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = SessionIdentity(claims, UserTypeNutritionist)
	assert.ErrorIs(t, err, ErrInvalidToken)

	id, err := ResetIdentity(claims)
	require.NoError(t, err)
	assert.Equal(t, "patient-1", id)
}

func TestSessionTokenIsNotAResetToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateSessionToken("patient-1", "p@x.com", UserTypePatient)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)

	_, err = ResetIdentity(claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       "patient-1",
		"userType": UserTypePatient,
		"exp":      time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestForeignSignatureRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       "user-1",
		"userType": UserTypeNutritionist,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
