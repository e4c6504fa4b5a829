package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PepsTwist/app-nutricionista/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func nutritionistRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", NutritionistAuth(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentNutritionist(c).ID})
	})
	return r
}

func TestNutritionistAuthAcceptsOwnRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs("user-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow("user-1", "n@x.com"))

	token, err := utils.GenerateSessionToken("user-1", "n@x.com", utils.UserTypeNutritionist)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	nutritionistRouter(db).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A patient session must not open a nutritionist route; the check fails on
// the claim shape before any database access.
func TestNutritionistAuthRejectsPatientSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	token, err := utils.GenerateSessionToken("patient-1", "p@x.com", utils.UserTypePatient)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	nutritionistRouter(db).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNutritionistAuthRejectsResetToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	token, err := utils.GenerateResetToken("patient-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	nutritionistRouter(db).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNutritionistAuthRejectsDeletedAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs("user-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	token, err := utils.GenerateSessionToken("user-1", "n@x.com", utils.UserTypeNutritionist)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	nutritionistRouter(db).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingAuthorizationHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	nutritionistRouter(db).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordAuthRejectsSessionToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PATCH("/reset", ResetPasswordAuth(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := utils.GenerateSessionToken("patient-1", "p@x.com", utils.UserTypePatient)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/reset", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordAuthAcceptsResetToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WithArgs("patient-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("patient-1", "PASSWORD_RESET_REQUIRED"))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PATCH("/reset", ResetPasswordAuth(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentPatient(c).ID})
	})

	token, err := utils.GenerateResetToken("patient-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/reset", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "patient-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
