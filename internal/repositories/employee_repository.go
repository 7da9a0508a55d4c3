package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound   = errors.New("employee profile not found")
	ErrEducationNotFound = errors.New("education record not found")
	ErrProjectNotFound   = errors.New("project not found")
)

type EmployeeRepository interface {
	FindByUserID(userID string) (*models.EmployeeProfile, error)
	Create(profile *models.EmployeeProfile) error
	Update(profile *models.EmployeeProfile) error
	SaveResume(profile *models.EmployeeProfile) error
	SetFeedback(profileID string, status models.FeedbackStatus, feedback *string, at *time.Time) error

	ListEducation(profileID string) ([]models.Education, error)
	FindEducationByID(id string) (*models.Education, error)
	CreateEducation(edu *models.Education) error
	UpdateEducation(edu *models.Education) error
	DeleteEducation(id string) error

	ListProjects(profileID string) ([]models.Project, error)
	FindProjectByID(id string) (*models.Project, error)
	CreateProject(project *models.Project) error
	UpdateProject(project *models.Project) error
	DeleteProject(id string) error
}

type EmployeeRepositoryImpl struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &EmployeeRepositoryImpl{db: db}
}

func (r *EmployeeRepositoryImpl) FindByUserID(userID string) (*models.EmployeeProfile, error) {
	var profile models.EmployeeProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *EmployeeRepositoryImpl) Create(profile *models.EmployeeProfile) error {
	return r.db.Create(profile).Error
}

func (r *EmployeeRepositoryImpl) Update(profile *models.EmployeeProfile) error {
	result := r.db.Model(profile).Updates(map[string]interface{}{
		"bio":                 profile.Bio,
		"skills":              profile.Skills,
		"years_of_experience": profile.YearsOfExperience,
		"resume_filename":     profile.ResumeFilename,
		"updated_at":          time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// SaveResume записывает новую версию резюме и сбрасывает прежний фидбек
func (r *EmployeeRepositoryImpl) SaveResume(profile *models.EmployeeProfile) error {
	result := r.db.Model(profile).Updates(map[string]interface{}{
		"resume_filename":    profile.ResumeFilename,
		"resume_text":        profile.ResumeText,
		"feedback_status":    profile.FeedbackStatus,
		"resume_feedback":    nil,
		"resume_feedback_at": nil,
		"updated_at":         time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *EmployeeRepositoryImpl) ListEducation(profileID string) ([]models.Education, error) {
	var records []models.Education
	err := r.db.Where("profile_id = ?", profileID).Order("start_date DESC").Find(&records).Error
	return records, err
}

func (r *EmployeeRepositoryImpl) FindEducationByID(id string) (*models.Education, error) {
	var edu models.Education
	err := r.db.First(&edu, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEducationNotFound
		}
		return nil, err
	}
	return &edu, nil
}

func (r *EmployeeRepositoryImpl) CreateEducation(edu *models.Education) error {
	return r.db.Create(edu).Error
}

func (r *EmployeeRepositoryImpl) UpdateEducation(edu *models.Education) error {
	result := r.db.Model(edu).Updates(map[string]interface{}{
		"institution":    edu.Institution,
		"degree":         edu.Degree,
		"field_of_study": edu.FieldOfStudy,
		"start_date":     edu.StartDate,
		"end_date":       edu.EndDate,
		"description":    edu.Description,
		"updated_at":     time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEducationNotFound
	}
	return nil
}

func (r *EmployeeRepositoryImpl) DeleteEducation(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Education{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEducationNotFound
	}
	return nil
}

func (r *EmployeeRepositoryImpl) ListProjects(profileID string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("profile_id = ?", profileID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *EmployeeRepositoryImpl) FindProjectByID(id string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *EmployeeRepositoryImpl) CreateProject(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *EmployeeRepositoryImpl) UpdateProject(project *models.Project) error {
	result := r.db.Model(project).Updates(map[string]interface{}{
		"title":             project.Title,
		"description":       project.Description,
		"technologies_used": project.TechnologiesUsed,
		"start_date":        project.StartDate,
		"end_date":          project.EndDate,
		"project_url":       project.ProjectURL,
		"repository_url":    project.RepositoryURL,
		"updated_at":        time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *EmployeeRepositoryImpl) DeleteProject(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// SetFeedback обновляет статус и текст AI-фидбека по резюме
func (r *EmployeeRepositoryImpl) SetFeedback(profileID string, status models.FeedbackStatus, feedback *string, at *time.Time) error {
	result := r.db.Model(&models.EmployeeProfile{}).Where("id = ?", profileID).Updates(map[string]interface{}{
		"feedback_status":    status,
		"resume_feedback":    feedback,
		"resume_feedback_at": at,
		"updated_at":         time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
