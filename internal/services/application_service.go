package services

import (
	"errors"

	"jobportal_backend/internal/appErrors"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

type ApplicationService interface {
	Apply(employeeID, jobID string) (*dto.ApplicationResponse, error)
	ExpressInterest(employeeID, jobID string) (*dto.ApplicationResponse, error)
	ListEmployeeApplications(employeeID string) ([]dto.ApplicationResponse, error)
	ListJobApplications(employerID, jobID string) ([]dto.ApplicationResponse, error)
	UpdateStatus(employerID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
	UpdateNotes(employerID, applicationID string, req *dto.UpdateApplicationNotesRequest) (*dto.ApplicationResponse, error)
}

type ApplicationServiceImpl struct {
	appRepo repositories.ApplicationRepository
	jobRepo repositories.JobRepository
}

func NewApplicationService(appRepo repositories.ApplicationRepository, jobRepo repositories.JobRepository) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo: appRepo,
		jobRepo: jobRepo,
	}
}

// Apply - отклик сотрудника на вакансию в один клик.
// Пара (сотрудник, вакансия) уникальна независимо от статуса.
func (s *ApplicationServiceImpl) Apply(employeeID, jobID string) (*dto.ApplicationResponse, error) {
	app, err := s.createApplication(employeeID, jobID, models.ApplicationStatusApplied)
	if err != nil {
		return nil, err
	}

	logger.Info("application submitted", "application_id", app.ID, "job_id", jobID, "employee_id", employeeID)
	return dto.NewApplicationResponse(app), nil
}

// ExpressInterest - отметка "интересно" без полноценного отклика.
// Конфликт различает существующий интерес и уже поданный отклик.
func (s *ApplicationServiceImpl) ExpressInterest(employeeID, jobID string) (*dto.ApplicationResponse, error) {
	app, err := s.createApplication(employeeID, jobID, models.ApplicationStatusInterested)
	if err != nil {
		return nil, err
	}

	logger.Info("interest expressed", "application_id", app.ID, "job_id", jobID, "employee_id", employeeID)
	return dto.NewApplicationResponse(app), nil
}

// createApplication создает запись с заданным стартовым статусом.
// Существующая запись любого статуса дает Conflict, текст которого
// говорит сотруднику, что именно он уже сделал с этой вакансией.
func (s *ApplicationServiceImpl) createApplication(employeeID, jobID string, status models.ApplicationStatus) (*models.JobApplication, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if existing, err := s.appRepo.FindByEmployeeAndJob(employeeID, job.ID); err == nil {
		if existing.Status == models.ApplicationStatusInterested {
			return nil, appErrors.ErrInterestExists
		}
		return nil, appErrors.ErrApplicationExists
	} else if !errors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, appErrors.InternalError(err)
	}

	app := &models.JobApplication{
		EmployeeID: employeeID,
		JobID:      job.ID,
		Status:     status,
	}
	if err := s.appRepo.Create(app); err != nil {
		if errors.Is(err, repositories.ErrApplicationExists) {
			return nil, appErrors.ErrApplicationExists
		}
		return nil, appErrors.InternalError(err)
	}
	app.Job = job
	return app, nil
}

func (s *ApplicationServiceImpl) ListEmployeeApplications(employeeID string) ([]dto.ApplicationResponse, error) {
	apps, err := s.appRepo.FindByEmployee(employeeID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return mapApplications(apps), nil
}

// ListJobApplications - отклики на вакансию; доступно только ее владельцу
func (s *ApplicationServiceImpl) ListJobApplications(employerID, jobID string) ([]dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	if job.EmployerID != employerID {
		return nil, appErrors.ErrNotJobOwner
	}

	apps, err := s.appRepo.FindByJob(jobID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return mapApplications(apps), nil
}

// UpdateStatus - перевод отклика по воронке работодателем-владельцем вакансии
func (s *ApplicationServiceImpl) UpdateStatus(employerID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	app, err := s.findOwnedApplication(employerID, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.appRepo.UpdateStatus(app.ID, req.Status); err != nil {
		return nil, appErrors.InternalError(err)
	}
	app.Status = req.Status

	logger.Info("application status updated", "application_id", app.ID, "status", req.Status)
	return dto.NewApplicationResponse(app), nil
}

func (s *ApplicationServiceImpl) UpdateNotes(employerID, applicationID string, req *dto.UpdateApplicationNotesRequest) (*dto.ApplicationResponse, error) {
	app, err := s.findOwnedApplication(employerID, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.appRepo.UpdateNotes(app.ID, req.Notes); err != nil {
		return nil, appErrors.InternalError(err)
	}
	app.Notes = req.Notes

	return dto.NewApplicationResponse(app), nil
}

// findOwnedApplication загружает отклик и проверяет, что вакансия
// принадлежит данному работодателю
func (s *ApplicationServiceImpl) findOwnedApplication(employerID, applicationID string) (*models.JobApplication, error) {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, appErrors.ErrApplicationNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	if app.Job == nil || app.Job.EmployerID != employerID {
		return nil, appErrors.ErrNotJobOwner
	}
	return app, nil
}

func mapApplications(apps []models.JobApplication) []dto.ApplicationResponse {
	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, *dto.NewApplicationResponse(&apps[i]))
	}
	return responses
}
