package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobportal_backend/internal/appErrors"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
)

func newUserTestEnv(t *testing.T) (*gorm.DB, UserService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.EmployeeProfile{}, &models.PasswordResetToken{}))
	return db, NewUserService(repositories.NewUserRepository(db))
}

func createUserWithStatus(t *testing.T, db *gorm.DB, email string, role models.UserRole, status models.UserStatus) *models.User {
	user := &models.User{Name: "U", Email: email, Role: role, Status: status}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestSuspendAndReactivate(t *testing.T) {
	db, svc := newUserTestEnv(t)
	user := createUserWithStatus(t, db, "u@test.com", models.UserRoleEmployee, models.UserStatusActive)

	resp, err := svc.SuspendUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusSuspended, resp.Status)

	// Повторная блокировка - ошибка, аккаунт уже не active
	_, err = svc.SuspendUser(user.ID)
	assertAppErrorCode(t, err, appErrors.CodeBadRequest)

	resp, err = svc.ReactivateUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, resp.Status)

	_, err = svc.ReactivateUser(user.ID)
	assertAppErrorCode(t, err, appErrors.CodeBadRequest)
}

func TestSuspend_ProtectsAdmins(t *testing.T) {
	db, svc := newUserTestEnv(t)
	admin := createUserWithStatus(t, db, "admin@test.com", models.UserRoleAdmin, models.UserStatusActive)

	_, err := svc.SuspendUser(admin.ID)
	assertAppErrorCode(t, err, appErrors.CodeBadRequest)
}

func TestFindPendingEmployers(t *testing.T) {
	db, svc := newUserTestEnv(t)
	createUserWithStatus(t, db, "p1@corp.test", models.UserRoleEmployer, models.UserStatusPendingAdminApproval)
	createUserWithStatus(t, db, "p2@corp.test", models.UserRoleEmployer, models.UserStatusPendingAdminApproval)
	createUserWithStatus(t, db, "active@corp.test", models.UserRoleEmployer, models.UserStatusActive)
	createUserWithStatus(t, db, "emp@test.com", models.UserRoleEmployee, models.UserStatusPendingEmailVerification)

	pending, err := svc.FindPendingEmployers()
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	for _, u := range pending {
		assert.Equal(t, models.UserStatusPendingAdminApproval, u.Status)
	}
}

func TestGetUser(t *testing.T) {
	db, svc := newUserTestEnv(t)
	user := createUserWithStatus(t, db, "get@test.com", models.UserRoleEmployee, models.UserStatusActive)

	resp, err := svc.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "get@test.com", resp.Email)

	_, err = svc.GetUser("no-such-id")
	assertAppErrorCode(t, err, appErrors.CodeUserNotFound)
}
