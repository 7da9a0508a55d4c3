package services

import (
	"errors"

	"jobportal_backend/internal/appErrors"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

type UserService interface {
	GetUser(userID string) (*dto.UserResponse, error)
	FindPendingEmployers() ([]*dto.UserResponse, error)
	SuspendUser(userID string) (*dto.UserResponse, error)
	ReactivateUser(userID string) (*dto.UserResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetUser возвращает публичное представление аккаунта
func (s *UserServiceImpl) GetUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// FindPendingEmployers - очередь работодателей на одобрение для админки
func (s *UserServiceImpl) FindPendingEmployers() ([]*dto.UserResponse, error) {
	users, err := s.userRepo.FindPendingEmployers()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}
	return responses, nil
}

// SuspendUser переводит активный аккаунт в suspended.
// Выпущенные токены перестают проходить проверку статуса при следующем запросе.
func (s *UserServiceImpl) SuspendUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if user.Role == models.UserRoleAdmin {
		return nil, appErrors.BadRequest("Admin accounts cannot be suspended.")
	}
	if user.Status != models.UserStatusActive {
		return nil, appErrors.BadRequest("Only active accounts can be suspended.")
	}

	if err := s.userRepo.UpdateStatus(user.ID, models.UserStatusSuspended); err != nil {
		return nil, appErrors.InternalError(err)
	}
	user.Status = models.UserStatusSuspended

	logger.Info("user suspended", "user_id", userID)
	return dto.NewUserResponse(user), nil
}

// ReactivateUser возвращает suspended-аккаунт в active
func (s *UserServiceImpl) ReactivateUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if user.Status != models.UserStatusSuspended {
		return nil, appErrors.BadRequest("Only suspended accounts can be reactivated.")
	}

	if err := s.userRepo.UpdateStatus(user.ID, models.UserStatusActive); err != nil {
		return nil, appErrors.InternalError(err)
	}
	user.Status = models.UserStatusActive

	logger.Info("user reactivated", "user_id", userID)
	return dto.NewUserResponse(user), nil
}
