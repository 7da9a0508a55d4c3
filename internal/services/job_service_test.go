package services

import (
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

type jobTestEnv struct {
	db     *gorm.DB
	svc    JobService
	appSvc ApplicationService
}

func newJobTestEnv(t *testing.T) *jobTestEnv {
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
	return &jobTestEnv{
		db:     db,
		svc:    NewJobService(jobRepo, repositories.NewUserRepository(db), repositories.NewEmployeeRepository(db), appRepo),
		appSvc: NewApplicationService(appRepo, jobRepo),
	}
}

func (env *jobTestEnv) createEmployer(t *testing.T, email, company string) *models.User {
	user := &models.User{
		Name:        "Employer",
		Email:       email,
		Role:        models.UserRoleEmployer,
		Status:      models.UserStatusActive,
		CompanyName: &company,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func TestCreateJob_DefaultsCompanyName(t *testing.T) {
	env := newJobTestEnv(t)
	employer := env.createEmployer(t, "e1@corp.test", "Acme")

	job, err := env.svc.CreateJob(employer.ID, &dto.CreateJobRequest{
		Title:          "Go Developer",
		Description:    "Backend services",
		Location:       "Almaty",
		SkillsRequired: []string{"go", "postgres"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", job.CompanyName, "falls back to the employer's company")
	assert.Equal(t, []string{"go", "postgres"}, job.SkillsRequired)
	assert.Equal(t, employer.ID, job.EmployerID)
	assert.WithinDuration(t, time.Now(), job.PostedAt, time.Minute)
}

func TestUpdateJob_OnlyOwner(t *testing.T) {
	env := newJobTestEnv(t)
	owner := env.createEmployer(t, "owner@corp.test", "Acme")
	other := env.createEmployer(t, "other@corp.test", "Evil Corp")

	job, err := env.svc.CreateJob(owner.ID, &dto.CreateJobRequest{
		Title:       "Go Developer",
		Description: "Backend",
		Location:    "Astana",
	})
	require.NoError(t, err)

	newTitle := "Senior Go Developer"
	_, err = env.svc.UpdateJob(other.ID, job.ID, &dto.UpdateJobRequest{Title: &newTitle})
	assertAppErrorCode(t, err, appErrors.CodeInsufficientPermissions)

	updated, err := env.svc.UpdateJob(owner.ID, job.ID, &dto.UpdateJobRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	// Нетронутые поля сохраняются
	assert.Equal(t, "Astana", updated.Location)
}

func TestUpdateJob_SalaryRangeValidation(t *testing.T) {
	env := newJobTestEnv(t)
	owner := env.createEmployer(t, "salary@corp.test", "Acme")

	min := 500000
	job, err := env.svc.CreateJob(owner.ID, &dto.CreateJobRequest{
		Title:       "Dev",
		Description: "Backend",
		Location:    "Remote",
		SalaryMin:   &min,
	})
	require.NoError(t, err)

	badMax := 100000
	_, err = env.svc.UpdateJob(owner.ID, job.ID, &dto.UpdateJobRequest{SalaryMax: &badMax})
	assertAppErrorCode(t, err, appErrors.CodeValidationFailed)
}

func TestDeleteJob_OnlyOwner(t *testing.T) {
	env := newJobTestEnv(t)
	owner := env.createEmployer(t, "del@corp.test", "Acme")
	other := env.createEmployer(t, "del2@corp.test", "Other")

	job, err := env.svc.CreateJob(owner.ID, &dto.CreateJobRequest{
		Title:       "Dev",
		Description: "Backend",
		Location:    "Remote",
	})
	require.NoError(t, err)

	err = env.svc.DeleteJob(other.ID, job.ID)
	assertAppErrorCode(t, err, appErrors.CodeInsufficientPermissions)

	require.NoError(t, env.svc.DeleteJob(owner.ID, job.ID))

	_, err = env.svc.GetJob(job.ID)
	assertAppErrorCode(t, err, appErrors.CodeJobNotFound)
}

func TestSearchJobs_FiltersAndPagination(t *testing.T) {
	env := newJobTestEnv(t)
	employer := env.createEmployer(t, "search@corp.test", "Acme")

	seed := []dto.CreateJobRequest{
		{Title: "Go Developer", Description: "Backend", Location: "Almaty", SkillsRequired: []string{"go"}},
		{Title: "Python Developer", Description: "ML pipelines", Location: "Almaty", SkillsRequired: []string{"python"}},
		{Title: "Go Architect", Description: "Design systems", Location: "Astana", SkillsRequired: []string{"go", "kafka"}},
	}
	for i := range seed {
		_, err := env.svc.CreateJob(employer.ID, &seed[i])
		require.NoError(t, err)
	}

	// Подстрока в заголовке
	result, err := env.svc.SearchJobs(&dto.JobSearchQuery{Query: "Go"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Total)

	// Фильтр по городу
	result, err = env.svc.SearchJobs(&dto.JobSearchQuery{Location: "Almaty"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Total)

	// Фильтр по навыку
	result, err = env.svc.SearchJobs(&dto.JobSearchQuery{Skill: "kafka"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Total)
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, "Go Architect", result.Jobs[0].Title)

	// Пагинация
	result, err = env.svc.SearchJobs(&dto.JobSearchQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Total)
	assert.Len(t, result.Jobs, 2)
	assert.Equal(t, 2, result.PageSize)

	result, err = env.svc.SearchJobs(&dto.JobSearchQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, result.Jobs, 1)
}

func (env *jobTestEnv) createEmployeeWithSkills(t *testing.T, email string, skills []string) *models.User {
	user := &models.User{
		Name:   "Employee",
		Email:  email,
		Role:   models.UserRoleEmployee,
		Status: models.UserStatusActive,
	}
	require.NoError(t, env.db.Create(user).Error)

	profile := &models.EmployeeProfile{UserID: user.ID}
	profile.SetSkillList(skills)
	require.NoError(t, env.db.Create(profile).Error)
	return user
}

func TestRecommendJobs_MatchesSkillsAndRanks(t *testing.T) {
	env := newJobTestEnv(t)
	employer := env.createEmployer(t, "rec@corp.test", "Acme")
	employee := env.createEmployeeWithSkills(t, "worker@test.com", []string{"Go", "Postgres"})

	seed := []dto.CreateJobRequest{
		{Title: "Go Developer", Description: "d", Location: "l", SkillsRequired: []string{"go", "postgres"}},
		{Title: "Go Junior", Description: "d", Location: "l", SkillsRequired: []string{"go"}},
		{Title: "Frontend", Description: "d", Location: "l", SkillsRequired: []string{"react"}},
	}
	for i := range seed {
		_, err := env.svc.CreateJob(employer.ID, &seed[i])
		require.NoError(t, err)
	}

	recs, err := env.svc.RecommendJobs(employee.ID, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2, "jobs without a skill overlap are left out")

	// Больше совпавших навыков - выше в списке; сравнение без учета регистра
	assert.Equal(t, "Go Developer", recs[0].Title)
	assert.Equal(t, 2, recs[0].MatchScore)
	assert.Equal(t, "Go Junior", recs[1].Title)
	assert.Equal(t, 1, recs[1].MatchScore)
}

func TestRecommendJobs_ExcludesJobsTheEmployeeActedOn(t *testing.T) {
	env := newJobTestEnv(t)
	employer := env.createEmployer(t, "rec2@corp.test", "Acme")
	employee := env.createEmployeeWithSkills(t, "worker2@test.com", []string{"go"})

	applied, err := env.svc.CreateJob(employer.ID, &dto.CreateJobRequest{
		Title: "Applied", Description: "d", Location: "l", SkillsRequired: []string{"go"},
	})
	require.NoError(t, err)
	interested, err := env.svc.CreateJob(employer.ID, &dto.CreateJobRequest{
		Title: "Interested", Description: "d", Location: "l", SkillsRequired: []string{"go"},
	})
	require.NoError(t, err)
	fresh, err := env.svc.CreateJob(employer.ID, &dto.CreateJobRequest{
		Title: "Fresh", Description: "d", Location: "l", SkillsRequired: []string{"go"},
	})
	require.NoError(t, err)

	_, err = env.appSvc.Apply(employee.ID, applied.ID)
	require.NoError(t, err)
	_, err = env.appSvc.ExpressInterest(employee.ID, interested.ID)
	require.NoError(t, err)

	recs, err := env.svc.RecommendJobs(employee.ID, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, fresh.ID, recs[0].ID)
}

func TestRecommendJobs_NoSkillsMeansNoRecommendations(t *testing.T) {
	env := newJobTestEnv(t)
	employer := env.createEmployer(t, "rec3@corp.test", "Acme")
	employee := env.createEmployeeWithSkills(t, "worker3@test.com", nil)

	_, err := env.svc.CreateJob(employer.ID, &dto.CreateJobRequest{
		Title: "Any", Description: "d", Location: "l", SkillsRequired: []string{"go"},
	})
	require.NoError(t, err)

	recs, err := env.svc.RecommendJobs(employee.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendJobs_HonorsLimit(t *testing.T) {
	env := newJobTestEnv(t)
	employer := env.createEmployer(t, "rec4@corp.test", "Acme")
	employee := env.createEmployeeWithSkills(t, "worker4@test.com", []string{"go"})

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := env.svc.CreateJob(employer.ID, &dto.CreateJobRequest{
			Title: title, Description: "d", Location: "l", SkillsRequired: []string{"go"},
		})
		require.NoError(t, err)
	}

	recs, err := env.svc.RecommendJobs(employee.ID, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestListEmployerJobs(t *testing.T) {
	env := newJobTestEnv(t)
	a := env.createEmployer(t, "a@corp.test", "A")
	b := env.createEmployer(t, "b@corp.test", "B")

	_, err := env.svc.CreateJob(a.ID, &dto.CreateJobRequest{Title: "One", Description: "d", Location: "l"})
	require.NoError(t, err)
	_, err = env.svc.CreateJob(b.ID, &dto.CreateJobRequest{Title: "Two", Description: "d", Location: "l"})
	require.NoError(t, err)

	jobs, err := env.svc.ListEmployerJobs(a.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "One", jobs[0].Title)
}
