package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrResetTokenNotFound = errors.New("reset token not found")

type ResetTokenRepository interface {
	FindByCode(code string) (*models.PasswordResetToken, error)
	Create(token *models.PasswordResetToken) error
	DeleteByID(id string) error
	DeleteByUserID(userID string) error
	CodeExists(code string) (bool, error)
}

type ResetTokenRepositoryImpl struct {
	db *gorm.DB
}

func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &ResetTokenRepositoryImpl{db: db}
}

func (r *ResetTokenRepositoryImpl) FindByCode(code string) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	err := r.db.First(&token, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *ResetTokenRepositoryImpl) Create(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

func (r *ResetTokenRepositoryImpl) DeleteByID(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.PasswordResetToken{}).Error
}

func (r *ResetTokenRepositoryImpl) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.PasswordResetToken{}).Error
}

func (r *ResetTokenRepositoryImpl) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.PasswordResetToken{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}
