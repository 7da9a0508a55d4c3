package services

import (
	"context"
	"errors"
	"time"

	"jobportal_backend/internal/appErrors"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

type EmployeeService interface {
	GetProfile(userID string) (*dto.EmployeeProfileResponse, error)
	UpdateProfile(userID string, req *dto.UpdateEmployeeProfileRequest) (*dto.EmployeeProfileResponse, error)
	UploadResume(userID, filename, resumeText string) (*dto.EmployeeProfileResponse, error)
	RequestResumeFeedback(userID string) (*dto.EmployeeProfileResponse, error)

	ListEducation(userID string) ([]dto.EducationResponse, error)
	AddEducation(userID string, req *dto.CreateEducationRequest) (*dto.EducationResponse, error)
	UpdateEducation(userID, educationID string, req *dto.UpdateEducationRequest) (*dto.EducationResponse, error)
	DeleteEducation(userID, educationID string) error

	ListProjects(userID string) ([]dto.ProjectResponse, error)
	AddProject(userID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	UpdateProject(userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(userID, projectID string) error
}

type EmployeeServiceImpl struct {
	employeeRepo repositories.EmployeeRepository
	feedback     ResumeFeedbackGenerator
}

func NewEmployeeService(employeeRepo repositories.EmployeeRepository, feedback ResumeFeedbackGenerator) EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		feedback:     feedback,
	}
}

func (s *EmployeeServiceImpl) GetProfile(userID string) (*dto.EmployeeProfileResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}
	return dto.NewEmployeeProfileResponse(profile), nil
}

// UpdateProfile обновляет только присланные поля
func (s *EmployeeServiceImpl) UpdateProfile(userID string, req *dto.UpdateEmployeeProfileRequest) (*dto.EmployeeProfileResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Skills != nil {
		profile.SetSkillList(req.Skills)
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = *req.YearsOfExperience
	}

	if err := s.employeeRepo.Update(profile); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, appErrors.ErrProfileNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return dto.NewEmployeeProfileResponse(profile), nil
}

// UploadResume сохраняет текст резюме и сбрасывает прежний AI-отзыв:
// рецензия относится к конкретной версии резюме
func (s *EmployeeServiceImpl) UploadResume(userID, filename, resumeText string) (*dto.EmployeeProfileResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	profile.ResumeFilename = &filename
	profile.ResumeText = &resumeText
	profile.FeedbackStatus = models.FeedbackStatusNone
	profile.ResumeFeedback = nil
	profile.ResumeFeedbackAt = nil

	if err := s.employeeRepo.SaveResume(profile); err != nil {
		return nil, appErrors.InternalError(err)
	}

	logger.Info("resume uploaded", "user_id", userID, "filename", filename)
	return dto.NewEmployeeProfileResponse(profile), nil
}

// RequestResumeFeedback запускает AI-рецензирование резюме в фоне.
// Статус проходит pending -> completed либо pending -> failed;
// повторный запрос во время pending отклоняется.
func (s *EmployeeServiceImpl) RequestResumeFeedback(userID string) (*dto.EmployeeProfileResponse, error) {
	if s.feedback == nil {
		return nil, appErrors.BadRequest("Resume feedback is not available.")
	}

	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile.ResumeText == nil || *profile.ResumeText == "" {
		return nil, appErrors.BadRequest("Upload a resume before requesting feedback.")
	}
	if profile.FeedbackStatus == models.FeedbackStatusPending {
		return nil, appErrors.BadRequest("Resume feedback is already being generated.")
	}

	if err := s.employeeRepo.SetFeedback(profile.ID, models.FeedbackStatusPending, nil, nil); err != nil {
		return nil, appErrors.InternalError(err)
	}
	profile.FeedbackStatus = models.FeedbackStatusPending
	profile.ResumeFeedback = nil
	profile.ResumeFeedbackAt = nil

	go s.generateFeedback(profile.ID, profile.UserID, *profile.ResumeText)

	return dto.NewEmployeeProfileResponse(profile), nil
}

func (s *EmployeeServiceImpl) generateFeedback(profileID, userID, resumeText string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	feedback, err := s.feedback.GenerateFeedback(ctx, resumeText)
	if err != nil {
		logger.Error("resume feedback generation failed", "user_id", userID, "error", err)
		if updErr := s.employeeRepo.SetFeedback(profileID, models.FeedbackStatusFailed, nil, nil); updErr != nil {
			logger.Error("failed to record feedback failure", "profile_id", profileID, "error", updErr)
		}
		return
	}

	now := time.Now()
	if err := s.employeeRepo.SetFeedback(profileID, models.FeedbackStatusCompleted, &feedback, &now); err != nil {
		logger.Error("failed to store resume feedback", "profile_id", profileID, "error", err)
		return
	}
	logger.Info("resume feedback generated", "user_id", userID)
}

func (s *EmployeeServiceImpl) ListEducation(userID string) ([]dto.EducationResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	records, err := s.employeeRepo.ListEducation(profile.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	responses := make([]dto.EducationResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *dto.NewEducationResponse(&records[i]))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) AddEducation(userID string, req *dto.CreateEducationRequest) (*dto.EducationResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		Institution:  req.Institution,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Description:  req.Description,
	}
	if err := s.employeeRepo.CreateEducation(edu); err != nil {
		return nil, appErrors.InternalError(err)
	}

	logger.Info("education record added", "user_id", userID, "education_id", edu.ID)
	return dto.NewEducationResponse(edu), nil
}

// UpdateEducation обновляет только присланные поля; чужие записи недоступны
func (s *EmployeeServiceImpl) UpdateEducation(userID, educationID string, req *dto.UpdateEducationRequest) (*dto.EducationResponse, error) {
	edu, err := s.findOwnedEducation(userID, educationID)
	if err != nil {
		return nil, err
	}

	if req.Institution != nil {
		edu.Institution = *req.Institution
	}
	if req.Degree != nil {
		edu.Degree = *req.Degree
	}
	if req.FieldOfStudy != nil {
		edu.FieldOfStudy = req.FieldOfStudy
	}
	if req.StartDate != nil {
		edu.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		edu.EndDate = req.EndDate
	}
	if req.Description != nil {
		edu.Description = req.Description
	}

	if err := s.employeeRepo.UpdateEducation(edu); err != nil {
		if errors.Is(err, repositories.ErrEducationNotFound) {
			return nil, appErrors.ErrEducationNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return dto.NewEducationResponse(edu), nil
}

func (s *EmployeeServiceImpl) DeleteEducation(userID, educationID string) error {
	edu, err := s.findOwnedEducation(userID, educationID)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.DeleteEducation(edu.ID); err != nil {
		if errors.Is(err, repositories.ErrEducationNotFound) {
			return appErrors.ErrEducationNotFound
		}
		return appErrors.InternalError(err)
	}

	logger.Info("education record deleted", "user_id", userID, "education_id", educationID)
	return nil
}

func (s *EmployeeServiceImpl) ListProjects(userID string) ([]dto.ProjectResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	projects, err := s.employeeRepo.ListProjects(profile.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	responses := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *dto.NewProjectResponse(&projects[i]))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) AddProject(userID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		ProfileID:     profile.ID,
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		ProjectURL:    req.ProjectURL,
		RepositoryURL: req.RepositoryURL,
	}
	project.SetTechnologyList(req.TechnologiesUsed)

	if err := s.employeeRepo.CreateProject(project); err != nil {
		return nil, appErrors.InternalError(err)
	}

	logger.Info("project added", "user_id", userID, "project_id", project.ID)
	return dto.NewProjectResponse(project), nil
}

func (s *EmployeeServiceImpl) UpdateProject(userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.findOwnedProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.TechnologiesUsed != nil {
		project.SetTechnologyList(req.TechnologiesUsed)
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.ProjectURL != nil {
		project.ProjectURL = req.ProjectURL
	}
	if req.RepositoryURL != nil {
		project.RepositoryURL = req.RepositoryURL
	}

	if err := s.employeeRepo.UpdateProject(project); err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, appErrors.ErrProjectNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return dto.NewProjectResponse(project), nil
}

func (s *EmployeeServiceImpl) DeleteProject(userID, projectID string) error {
	project, err := s.findOwnedProject(userID, projectID)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.DeleteProject(project.ID); err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return appErrors.ErrProjectNotFound
		}
		return appErrors.InternalError(err)
	}

	logger.Info("project deleted", "user_id", userID, "project_id", projectID)
	return nil
}

// findOwnedEducation загружает запись и проверяет, что она принадлежит
// профилю данного сотрудника
func (s *EmployeeServiceImpl) findOwnedEducation(userID, educationID string) (*models.Education, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	edu, err := s.employeeRepo.FindEducationByID(educationID)
	if err != nil {
		if errors.Is(err, repositories.ErrEducationNotFound) {
			return nil, appErrors.ErrEducationNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	if edu.ProfileID != profile.ID {
		return nil, appErrors.ErrForbidden
	}
	return edu, nil
}

func (s *EmployeeServiceImpl) findOwnedProject(userID, projectID string) (*models.Project, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	project, err := s.employeeRepo.FindProjectByID(projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, appErrors.ErrProjectNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	if project.ProfileID != profile.ID {
		return nil, appErrors.ErrForbidden
	}
	return project, nil
}

func (s *EmployeeServiceImpl) findProfile(userID string) (*models.EmployeeProfile, error) {
	profile, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, appErrors.ErrProfileNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return profile, nil
}
