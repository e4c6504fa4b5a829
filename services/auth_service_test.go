package services

import (
	"testing"

	"github.com/PepsTwist/app-nutricionista/models"
	"github.com/PepsTwist/app-nutricionista/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestLoginNutritionist(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("n@x.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).
			AddRow("user-1", "n@x.com", mustHash(t, "secret1")))

	result, err := NewAuthService(db).Login("n@x.com", "secret1")
	require.NoError(t, err)
	require.False(t, result.ResetRequired)

	claims, err := utils.ParseToken(result.AccessToken)
	require.NoError(t, err)
	id, err := utils.SessionIdentity(claims, utils.UserTypeNutritionist)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginPatientResetRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("p@x.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE email = \$1`).
		WithArgs("p@x.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "status"}).
			AddRow("patient-1", "p@x.com", mustHash(t, "secret1"), models.PatientStatusResetRequired))

	result, err := NewAuthService(db).Login("p@x.com", "secret1")
	require.NoError(t, err)

	assert.True(t, result.ResetRequired)
	assert.Empty(t, result.AccessToken)
	assert.Equal(t, "p@x.com", result.Email)

	// The reset token must not be usable as a session of either role.
	claims, err := utils.ParseToken(result.ResetToken)
	require.NoError(t, err)
	_, err = utils.SessionIdentity(claims, utils.UserTypePatient)
	assert.Error(t, err)
	id, err := utils.ResetIdentity(claims)
	require.NoError(t, err)
	assert.Equal(t, "patient-1", id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginActivePatient(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("p@x.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE email = \$1`).
		WithArgs("p@x.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "status"}).
			AddRow("patient-1", "p@x.com", mustHash(t, "newpass1"), models.PatientStatusActive))

	result, err := NewAuthService(db).Login("p@x.com", "newpass1")
	require.NoError(t, err)
	require.False(t, result.ResetRequired)

	claims, err := utils.ParseToken(result.AccessToken)
	require.NoError(t, err)
	id, err := utils.SessionIdentity(claims, utils.UserTypePatient)
	require.NoError(t, err)
	assert.Equal(t, "patient-1", id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPasswordFallsThroughToPatients(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("n@x.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).
			AddRow("user-1", "n@x.com", mustHash(t, "right-password")))
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE email = \$1`).
		WithArgs("n@x.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewAuthService(db).Login("n@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("ghost@x.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE email = \$1`).
		WithArgs("ghost@x.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewAuthService(db).Login("ghost@x.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}
