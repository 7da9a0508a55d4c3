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
	"jobportal_backend/internal/services/dto"
)

type applicationTestEnv struct {
	db     *gorm.DB
	svc    ApplicationService
	jobSvc JobService
}

func newApplicationTestEnv(t *testing.T) *applicationTestEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.EmployeeProfile{},
		&models.Job{},
		&models.JobApplication{},
	))

	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	return &applicationTestEnv{
		db:     db,
		svc:    NewApplicationService(appRepo, jobRepo),
		jobSvc: NewJobService(jobRepo, repositories.NewUserRepository(db), repositories.NewEmployeeRepository(db), appRepo),
	}
}

func (env *applicationTestEnv) createUser(t *testing.T, email string, role models.UserRole) *models.User {
	user := &models.User{
		Name:   "User",
		Email:  email,
		Role:   role,
		Status: models.UserStatusActive,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *applicationTestEnv) createJob(t *testing.T, employerID, title string) *dto.JobResponse {
	job, err := env.jobSvc.CreateJob(employerID, &dto.CreateJobRequest{
		Title:       title,
		Description: "d",
		Location:    "Remote",
		CompanyName: "Acme",
	})
	require.NoError(t, err)
	return job
}

func TestApply_OneClick(t *testing.T) {
	env := newApplicationTestEnv(t)
	employer := env.createUser(t, "boss@corp.test", models.UserRoleEmployer)
	employee := env.createUser(t, "worker@test.com", models.UserRoleEmployee)
	job := env.createJob(t, employer.ID, "Go Developer")

	app, err := env.svc.Apply(employee.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApplied, app.Status)
	assert.Equal(t, job.ID, app.JobID)
	require.NotNil(t, app.Job)
	assert.Equal(t, "Go Developer", app.Job.Title)
}

func TestApply_DuplicateRejected(t *testing.T) {
	env := newApplicationTestEnv(t)
	employer := env.createUser(t, "boss@corp.test", models.UserRoleEmployer)
	employee := env.createUser(t, "worker@test.com", models.UserRoleEmployee)
	job := env.createJob(t, employer.ID, "Go Developer")

	_, err := env.svc.Apply(employee.ID, job.ID)
	require.NoError(t, err)

	_, err = env.svc.Apply(employee.ID, job.ID)
	assertAppErrorCode(t, err, appErrors.CodeApplicationAlreadyExists)
}

func TestExpressInterest_CreatesInterestedApplication(t *testing.T) {
	env := newApplicationTestEnv(t)
	employer := env.createUser(t, "boss@corp.test", models.UserRoleEmployer)
	employee := env.createUser(t, "worker@test.com", models.UserRoleEmployee)
	job := env.createJob(t, employer.ID, "Go Developer")

	app, err := env.svc.ExpressInterest(employee.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusInterested, app.Status)
	assert.Equal(t, job.ID, app.JobID)
}

func TestExpressInterest_ConflictDistinguishesInterestFromApplication(t *testing.T) {
	env := newApplicationTestEnv(t)
	employer := env.createUser(t, "boss@corp.test", models.UserRoleEmployer)
	employee := env.createUser(t, "worker@test.com", models.UserRoleEmployee)
	interestJob := env.createJob(t, employer.ID, "One")
	appliedJob := env.createJob(t, employer.ID, "Two")

	_, err := env.svc.ExpressInterest(employee.ID, interestJob.ID)
	require.NoError(t, err)
	_, err = env.svc.Apply(employee.ID, appliedJob.ID)
	require.NoError(t, err)

	// Повторный интерес и интерес после отклика - конфликт с разным текстом
	_, err = env.svc.ExpressInterest(employee.ID, interestJob.ID)
	assertAppErrorCode(t, err, appErrors.CodeApplicationAlreadyExists)
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "expressed interest")

	_, err = env.svc.ExpressInterest(employee.ID, appliedJob.ID)
	assertAppErrorCode(t, err, appErrors.CodeApplicationAlreadyExists)
	require.True(t, appErrors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "applied for")
}

func TestApply_AfterInterestReportsExistingInterest(t *testing.T) {
	env := newApplicationTestEnv(t)
	employer := env.createUser(t, "boss@corp.test", models.UserRoleEmployer)
	employee := env.createUser(t, "worker@test.com", models.UserRoleEmployee)
	job := env.createJob(t, employer.ID, "Go Developer")

	_, err := env.svc.ExpressInterest(employee.ID, job.ID)
	require.NoError(t, err)

	_, err = env.svc.Apply(employee.ID, job.ID)
	assertAppErrorCode(t, err, appErrors.CodeApplicationAlreadyExists)
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "expressed interest")
}

func TestExpressInterest_UnknownJob(t *testing.T) {
	env := newApplicationTestEnv(t)
	employee := env.createUser(t, "worker@test.com", models.UserRoleEmployee)

	_, err := env.svc.ExpressInterest(employee.ID, "no-such-job")
	assertAppErrorCode(t, err, appErrors.CodeJobNotFound)
}

func TestApply_UnknownJob(t *testing.T) {
	env := newApplicationTestEnv(t)
	employee := env.createUser(t, "worker@test.com", models.UserRoleEmployee)

	_, err := env.svc.Apply(employee.ID, "no-such-job")
	assertAppErrorCode(t, err, appErrors.CodeJobNotFound)
}

func TestListJobApplications_OnlyOwner(t *testing.T) {
	env := newApplicationTestEnv(t)
	owner := env.createUser(t, "owner@corp.test", models.UserRoleEmployer)
	other := env.createUser(t, "other@corp.test", models.UserRoleEmployer)
	employee := env.createUser(t, "worker@test.com", models.UserRoleEmployee)
	job := env.createJob(t, owner.ID, "Go Developer")

	_, err := env.svc.Apply(employee.ID, job.ID)
	require.NoError(t, err)

	_, err = env.svc.ListJobApplications(other.ID, job.ID)
	assertAppErrorCode(t, err, appErrors.CodeInsufficientPermissions)

	apps, err := env.svc.ListJobApplications(owner.ID, job.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, employee.ID, apps[0].EmployeeID)
}

func TestUpdateStatusAndNotes_OwnerChecks(t *testing.T) {
	env := newApplicationTestEnv(t)
	owner := env.createUser(t, "owner@corp.test", models.UserRoleEmployer)
	other := env.createUser(t, "other@corp.test", models.UserRoleEmployer)
	employee := env.createUser(t, "worker@test.com", models.UserRoleEmployee)
	job := env.createJob(t, owner.ID, "Go Developer")

	app, err := env.svc.Apply(employee.ID, job.ID)
	require.NoError(t, err)

	// Чужой работодатель не может двигать отклик по воронке
	_, err = env.svc.UpdateStatus(other.ID, app.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusShortlisted,
	})
	assertAppErrorCode(t, err, appErrors.CodeInsufficientPermissions)

	updated, err := env.svc.UpdateStatus(owner.ID, app.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusShortlisted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusShortlisted, updated.Status)

	withNotes, err := env.svc.UpdateNotes(owner.ID, app.ID, &dto.UpdateApplicationNotesRequest{
		Notes: "Strong candidate",
	})
	require.NoError(t, err)
	assert.Equal(t, "Strong candidate", withNotes.Notes)

	_, err = env.svc.UpdateStatus(owner.ID, "no-such-app", &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusViewed,
	})
	assertAppErrorCode(t, err, appErrors.CodeApplicationNotFound)
}

func TestListEmployeeApplications(t *testing.T) {
	env := newApplicationTestEnv(t)
	employer := env.createUser(t, "boss@corp.test", models.UserRoleEmployer)
	employee := env.createUser(t, "worker@test.com", models.UserRoleEmployee)

	first := env.createJob(t, employer.ID, "One")
	second := env.createJob(t, employer.ID, "Two")

	_, err := env.svc.Apply(employee.ID, first.ID)
	require.NoError(t, err)
	_, err = env.svc.Apply(employee.ID, second.ID)
	require.NoError(t, err)

	apps, err := env.svc.ListEmployeeApplications(employee.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 2)
	for _, app := range apps {
		require.NotNil(t, app.Job, "applications are returned with their job")
	}
}
