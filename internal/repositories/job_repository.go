package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// JobFilter - критерии поиска вакансий
type JobFilter struct {
	Query     string // подстрока в заголовке или описании
	Location  string
	Skill     string
	SalaryMin *int
	Page      int
	PageSize  int
}

type JobRepository interface {
	FindByID(id string) (*models.Job, error)
	Create(job *models.Job) error
	Update(job *models.Job) error
	Delete(id string) error
	Search(filter JobFilter) ([]models.Job, int64, error)
	FindByEmployer(employerID string) ([]models.Job, error)
	FindRecent(limit int) ([]models.Job, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	result := r.db.Model(job).Updates(map[string]interface{}{
		"title":           job.Title,
		"description":     job.Description,
		"location":        job.Location,
		"skills_required": job.SkillsRequired,
		"company_name":    job.CompanyName,
		"salary_min":      job.SalaryMin,
		"salary_max":      job.SalaryMax,
		"updated_at":      time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Search(filter JobFilter) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{})

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if filter.Location != "" {
		query = query.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.Skill != "" {
		query = query.Where("skills_required LIKE ?", "%"+filter.Skill+"%")
	}
	if filter.SalaryMin != nil {
		query = query.Where("salary_max >= ? OR salary_max IS NULL", *filter.SalaryMin)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var jobs []models.Job
	err := query.
		Order("posted_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

// FindRecent - последние вакансии для подбора рекомендаций
func (r *JobRepositoryImpl) FindRecent(limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Order("posted_at DESC").Limit(limit).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByEmployer(employerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("employer_id = ?", employerID).Order("posted_at DESC").Find(&jobs).Error
	return jobs, err
}
