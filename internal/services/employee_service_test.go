package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobportal_backend/internal/appErrors"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

// fakeFeedbackGenerator отвечает заранее заданным текстом или ошибкой
type fakeFeedbackGenerator struct {
	answer string
	err    error
}

func (f *fakeFeedbackGenerator) GenerateFeedback(ctx context.Context, resumeText string) (string, error) {
	return f.answer, f.err
}

type employeeTestEnv struct {
	db       *gorm.DB
	repo     repositories.EmployeeRepository
	feedback *fakeFeedbackGenerator
	svc      EmployeeService
}

func newEmployeeTestEnv(t *testing.T) *employeeTestEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.EmployeeProfile{}, &models.Education{}, &models.Project{}))

	repo := repositories.NewEmployeeRepository(db)
	feedback := &fakeFeedbackGenerator{answer: "Looks solid."}
	return &employeeTestEnv{
		db:       db,
		repo:     repo,
		feedback: feedback,
		svc:      NewEmployeeService(repo, feedback),
	}
}

func (env *employeeTestEnv) createProfile(t *testing.T) *models.EmployeeProfile {
	return env.createProfileFor(t, "worker@test.com")
}

func (env *employeeTestEnv) createProfileFor(t *testing.T, email string) *models.EmployeeProfile {
	user := &models.User{
		Name:   "Worker",
		Email:  email,
		Role:   models.UserRoleEmployee,
		Status: models.UserStatusActive,
	}
	require.NoError(t, env.db.Create(user).Error)

	profile := &models.EmployeeProfile{UserID: user.ID}
	require.NoError(t, env.repo.Create(profile))
	return profile
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	env := newEmployeeTestEnv(t)
	profile := env.createProfile(t)

	bio := "Go developer with five years in fintech"
	resp, err := env.svc.UpdateProfile(profile.UserID, &dto.UpdateEmployeeProfileRequest{
		Bio:    &bio,
		Skills: []string{"go", "sql"},
	})
	require.NoError(t, err)
	assert.Equal(t, bio, resp.Bio)
	assert.Equal(t, []string{"go", "sql"}, resp.Skills)

	// Не присланные поля не трогаются
	years := 5
	resp, err = env.svc.UpdateProfile(profile.UserID, &dto.UpdateEmployeeProfileRequest{
		YearsOfExperience: &years,
	})
	require.NoError(t, err)
	assert.Equal(t, bio, resp.Bio)
	assert.Equal(t, 5, resp.YearsOfExperience)
}

func TestGetProfile_NotFound(t *testing.T) {
	env := newEmployeeTestEnv(t)

	_, err := env.svc.GetProfile("no-such-user")
	assertAppErrorCode(t, err, appErrors.CodeProfileNotFound)
}

func TestUploadResume_ResetsPreviousFeedback(t *testing.T) {
	env := newEmployeeTestEnv(t)
	profile := env.createProfile(t)

	old := "old feedback"
	now := time.Now()
	require.NoError(t, env.repo.SetFeedback(profile.ID, models.FeedbackStatusCompleted, &old, &now))

	resp, err := env.svc.UploadResume(profile.UserID, "resume.txt", "my resume text")
	require.NoError(t, err)
	require.NotNil(t, resp.ResumeFilename)
	assert.Equal(t, "resume.txt", *resp.ResumeFilename)
	assert.Equal(t, models.FeedbackStatusNone, resp.FeedbackStatus)
	assert.Nil(t, resp.ResumeFeedback, "feedback belongs to the previous resume version")
}

func TestRequestResumeFeedback_CompletesAsynchronously(t *testing.T) {
	env := newEmployeeTestEnv(t)
	profile := env.createProfile(t)

	_, err := env.svc.UploadResume(profile.UserID, "resume.txt", "my resume text")
	require.NoError(t, err)

	resp, err := env.svc.RequestResumeFeedback(profile.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackStatusPending, resp.FeedbackStatus)

	require.Eventually(t, func() bool {
		p, err := env.repo.FindByUserID(profile.UserID)
		return err == nil && p.FeedbackStatus == models.FeedbackStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	p, err := env.repo.FindByUserID(profile.UserID)
	require.NoError(t, err)
	require.NotNil(t, p.ResumeFeedback)
	assert.Equal(t, "Looks solid.", *p.ResumeFeedback)
	assert.NotNil(t, p.ResumeFeedbackAt)
}

func TestRequestResumeFeedback_FailureIsRecorded(t *testing.T) {
	env := newEmployeeTestEnv(t)
	env.feedback.err = errors.New("quota exceeded")
	profile := env.createProfile(t)

	_, err := env.svc.UploadResume(profile.UserID, "resume.txt", "my resume text")
	require.NoError(t, err)

	_, err = env.svc.RequestResumeFeedback(profile.UserID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		p, err := env.repo.FindByUserID(profile.UserID)
		return err == nil && p.FeedbackStatus == models.FeedbackStatusFailed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRequestResumeFeedback_Guards(t *testing.T) {
	env := newEmployeeTestEnv(t)
	profile := env.createProfile(t)

	// Без резюме запрашивать нечего
	_, err := env.svc.RequestResumeFeedback(profile.UserID)
	assertAppErrorCode(t, err, appErrors.CodeBadRequest)

	// С выключенным AI фича недоступна
	disabled := NewEmployeeService(env.repo, nil)
	_, err = disabled.RequestResumeFeedback(profile.UserID)
	assertAppErrorCode(t, err, appErrors.CodeBadRequest)
}

func TestEducation_CRUD(t *testing.T) {
	env := newEmployeeTestEnv(t)
	profile := env.createProfile(t)

	start := time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC)
	record, err := env.svc.AddEducation(profile.UserID, &dto.CreateEducationRequest{
		Institution: "KBTU",
		Degree:      "BSc Computer Science",
		StartDate:   start,
		EndDate:     &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "KBTU", record.Institution)

	newDegree := "MSc Computer Science"
	updated, err := env.svc.UpdateEducation(profile.UserID, record.ID, &dto.UpdateEducationRequest{
		Degree: &newDegree,
	})
	require.NoError(t, err)
	assert.Equal(t, newDegree, updated.Degree)
	// Нетронутые поля сохраняются
	assert.Equal(t, "KBTU", updated.Institution)

	records, err := env.svc.ListEducation(profile.UserID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, env.svc.DeleteEducation(profile.UserID, record.ID))
	records, err = env.svc.ListEducation(profile.UserID)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = env.svc.UpdateEducation(profile.UserID, record.ID, &dto.UpdateEducationRequest{Degree: &newDegree})
	assertAppErrorCode(t, err, appErrors.CodeEducationNotFound)
}

func TestEducation_ForeignRecordIsInaccessible(t *testing.T) {
	env := newEmployeeTestEnv(t)
	owner := env.createProfile(t)
	intruder := env.createProfileFor(t, "intruder@test.com")

	record, err := env.svc.AddEducation(owner.UserID, &dto.CreateEducationRequest{
		Institution: "KBTU",
		Degree:      "BSc",
		StartDate:   time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	degree := "PhD"
	_, err = env.svc.UpdateEducation(intruder.UserID, record.ID, &dto.UpdateEducationRequest{Degree: &degree})
	assertAppErrorCode(t, err, appErrors.CodeForbidden)

	err = env.svc.DeleteEducation(intruder.UserID, record.ID)
	assertAppErrorCode(t, err, appErrors.CodeForbidden)
}

func TestProjects_CRUD(t *testing.T) {
	env := newEmployeeTestEnv(t)
	profile := env.createProfile(t)

	project, err := env.svc.AddProject(profile.UserID, &dto.CreateProjectRequest{
		Title:            "Job Portal",
		Description:      "Backend for a hiring platform",
		TechnologiesUsed: []string{"go", "gin", "postgres"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "gin", "postgres"}, project.TechnologiesUsed)

	repoURL := "https://github.com/worker/job-portal"
	updated, err := env.svc.UpdateProject(profile.UserID, project.ID, &dto.UpdateProjectRequest{
		RepositoryURL: &repoURL,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.RepositoryURL)
	assert.Equal(t, repoURL, *updated.RepositoryURL)
	assert.Equal(t, "Job Portal", updated.Title)

	projects, err := env.svc.ListProjects(profile.UserID)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	require.NoError(t, env.svc.DeleteProject(profile.UserID, project.ID))
	projects, err = env.svc.ListProjects(profile.UserID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjects_ForeignProjectIsInaccessible(t *testing.T) {
	env := newEmployeeTestEnv(t)
	owner := env.createProfile(t)
	intruder := env.createProfileFor(t, "intruder@test.com")

	project, err := env.svc.AddProject(owner.UserID, &dto.CreateProjectRequest{
		Title:       "Job Portal",
		Description: "Backend",
	})
	require.NoError(t, err)

	err = env.svc.DeleteProject(intruder.UserID, project.ID)
	assertAppErrorCode(t, err, appErrors.CodeForbidden)

	title := "Hijacked"
	_, err = env.svc.UpdateProject(intruder.UserID, project.ID, &dto.UpdateProjectRequest{Title: &title})
	assertAppErrorCode(t, err, appErrors.CodeForbidden)
}
