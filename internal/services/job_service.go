package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"jobportal_backend/internal/appErrors"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

const (
	// Сколько последних вакансий рассматривается при подборе рекомендаций
	recommendationCandidatePool = 500
	defaultRecommendationLimit  = 10
)

type JobService interface {
	GetJob(jobID string) (*dto.JobResponse, error)
	CreateJob(employerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	UpdateJob(employerID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(employerID, jobID string) error
	SearchJobs(query *dto.JobSearchQuery) (*dto.JobListResponse, error)
	ListEmployerJobs(employerID string) ([]dto.JobResponse, error)
	RecommendJobs(employeeUserID string, limit int) ([]dto.JobRecommendation, error)
}

type JobServiceImpl struct {
	jobRepo      repositories.JobRepository
	userRepo     repositories.UserRepository
	employeeRepo repositories.EmployeeRepository
	appRepo      repositories.ApplicationRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	employeeRepo repositories.EmployeeRepository,
	appRepo repositories.ApplicationRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo:      jobRepo,
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		appRepo:      appRepo,
	}
}

func (s *JobServiceImpl) GetJob(jobID string) (*dto.JobResponse, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	return dto.NewJobResponse(job), nil
}

// CreateJob публикует вакансию от имени работодателя.
// Название компании по умолчанию берется из аккаунта работодателя.
func (s *JobServiceImpl) CreateJob(employerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	companyName := req.CompanyName
	if companyName == "" {
		employer, err := s.userRepo.FindByID(employerID)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		if employer.CompanyName != nil {
			companyName = *employer.CompanyName
		}
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		CompanyName: companyName,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		PostedAt:    time.Now(),
		EmployerID:  employerID,
	}
	job.SetSkillList(req.SkillsRequired)

	if err := s.jobRepo.Create(job); err != nil {
		return nil, appErrors.InternalError(err)
	}

	logger.Info("job posted", "job_id", job.ID, "employer_id", employerID)
	return dto.NewJobResponse(job), nil
}

// UpdateJob - частичное обновление; редактировать может только владелец
func (s *JobServiceImpl) UpdateJob(employerID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, appErrors.ErrNotJobOwner
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.SkillsRequired != nil {
		job.SetSkillList(req.SkillsRequired)
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMax < *job.SalaryMin {
		return nil, appErrors.ValidationError("salary_max cannot be below salary_min")
	}

	if err := s.jobRepo.Update(job); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return dto.NewJobResponse(job), nil
}

// DeleteJob удаляет вакансию; разрешено только владельцу
func (s *JobServiceImpl) DeleteJob(employerID, jobID string) error {
	job, err := s.findJob(jobID)
	if err != nil {
		return err
	}
	if job.EmployerID != employerID {
		return appErrors.ErrNotJobOwner
	}

	if err := s.jobRepo.Delete(jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return appErrors.ErrJobNotFound
		}
		return appErrors.InternalError(err)
	}

	logger.Info("job deleted", "job_id", jobID, "employer_id", employerID)
	return nil
}

// SearchJobs - публичный поиск с пагинацией
func (s *JobServiceImpl) SearchJobs(query *dto.JobSearchQuery) (*dto.JobListResponse, error) {
	filter := repositories.JobFilter{
		Query:     query.Query,
		Location:  query.Location,
		Skill:     query.Skill,
		SalaryMin: query.SalaryMin,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}

	jobs, total, err := s.jobRepo.Search(filter)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, *dto.NewJobResponse(&jobs[i]))
	}
	return &dto.JobListResponse{
		Jobs:     responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *JobServiceImpl) ListEmployerJobs(employerID string) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindByEmployer(employerID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, *dto.NewJobResponse(&jobs[i]))
	}
	return responses, nil
}

// RecommendJobs подбирает вакансии по навыкам из профиля сотрудника.
// Вакансии, на которые сотрудник уже откликнулся или отметил интерес,
// исключаются. Сортировка: число совпавших навыков, затем свежесть.
func (s *JobServiceImpl) RecommendJobs(employeeUserID string, limit int) ([]dto.JobRecommendation, error) {
	if limit < 1 {
		limit = defaultRecommendationLimit
	}

	profile, err := s.employeeRepo.FindByUserID(employeeUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, appErrors.ErrProfileNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	skills := make(map[string]struct{})
	for _, skill := range profile.SkillList() {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" {
			skills[skill] = struct{}{}
		}
	}
	if len(skills) == 0 {
		return []dto.JobRecommendation{}, nil
	}

	apps, err := s.appRepo.FindByEmployee(employeeUserID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	seen := make(map[string]struct{}, len(apps))
	for _, app := range apps {
		seen[app.JobID] = struct{}{}
	}

	jobs, err := s.jobRepo.FindRecent(recommendationCandidatePool)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	recommendations := make([]dto.JobRecommendation, 0, limit)
	for i := range jobs {
		job := &jobs[i]
		if _, ok := seen[job.ID]; ok {
			continue
		}

		matches := 0
		for _, required := range job.SkillList() {
			if _, ok := skills[strings.ToLower(strings.TrimSpace(required))]; ok {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		recommendations = append(recommendations, dto.JobRecommendation{
			JobResponse: *dto.NewJobResponse(job),
			MatchScore:  matches,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].MatchScore != recommendations[j].MatchScore {
			return recommendations[i].MatchScore > recommendations[j].MatchScore
		}
		return recommendations[i].PostedAt.After(recommendations[j].PostedAt)
	})
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}

	logger.Info("job recommendations generated", "user_id", employeeUserID, "count", len(recommendations))
	return recommendations, nil
}

func (s *JobServiceImpl) findJob(jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return job, nil
}
