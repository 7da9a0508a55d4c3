package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"jobportal_backend/internal/appErrors"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

const (
	verificationCodeTTL = 15 * time.Minute
	resetCodeTTL        = 1 * time.Hour
	resetCodeMaxRetries = 10
)

type AuthService interface {
	RegisterEmployee(req *dto.RegisterEmployeeRequest) error
	VerifyEmail(req *dto.VerifyEmailRequest) error
	RegisterEmployer(req *dto.RegisterEmployerRequest) error
	AdminApproveEmployer(userID string) (*dto.UserResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	ValidateToken(tokenString string) (*dto.AuthenticatedUser, error)
	Logout(jti string, expSeconds int64)
	ChangePassword(userID string, req *dto.ChangePasswordRequest, currentJTI string, currentExp int64) error
	ForgotPassword(emailAddr string) error
	ResetPassword(req *dto.ResetPasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	resetRepo     repositories.ResetTokenRepository
	employeeRepo  repositories.EmployeeRepository
	emailProvider email.Provider
	tokens        *auth.TokenManager
	denyList      *TokenDenyList
}

func NewAuthService(
	userRepo repositories.UserRepository,
	resetRepo repositories.ResetTokenRepository,
	employeeRepo repositories.EmployeeRepository,
	emailProvider email.Provider,
	tokens *auth.TokenManager,
	denyList *TokenDenyList,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		resetRepo:     resetRepo,
		employeeRepo:  employeeRepo,
		emailProvider: emailProvider,
		tokens:        tokens,
		denyList:      denyList,
	}
}

// RegisterEmployee - регистрация сотрудника: аккаунт без пароля в статусе
// pending_email_verification плюс письмо с 6-значным кодом.
// Для уже существующего pending-аккаунта код перегенерируется и отправляется заново.
func (s *AuthServiceImpl) RegisterEmployee(req *dto.RegisterEmployeeRequest) error {
	code, err := generateSixDigitCode()
	if err != nil {
		return appErrors.InternalError(err)
	}
	expires := time.Now().Add(verificationCodeTTL)

	existing, err := s.userRepo.FindByEmail(req.Email)
	switch {
	case err == nil:
		if existing.Status != models.UserStatusPendingEmailVerification {
			return conflictForStatus(existing.Status)
		}
		// Повторная регистрация до верификации: перезаписываем код и срок
		logger.Info("resending verification code for pending user", "email", req.Email)
		if err := s.userRepo.SetVerificationCode(existing.ID, code, expires); err != nil {
			return appErrors.InternalError(err)
		}
	case errors.Is(err, repositories.ErrUserNotFound):
		user := &models.User{
			Name:                       req.Name,
			Email:                      req.Email,
			Role:                       models.UserRoleEmployee,
			Status:                     models.UserStatusPendingEmailVerification,
			EmailVerificationCode:      &code,
			EmailVerificationExpiresAt: &expires,
		}
		if err := s.userRepo.Create(user); err != nil {
			if errors.Is(err, repositories.ErrUserAlreadyExists) {
				return appErrors.ErrEmailAlreadyExists
			}
			return appErrors.InternalError(err)
		}
	default:
		return appErrors.InternalError(err)
	}

	// Письмо сотрудник ждет синхронно: ошибка отправки возвращается наружу,
	// но созданный аккаунт не откатывается (at-least-once семантика)
	if err := s.emailProvider.SendTemplate(
		[]string{req.Email},
		"Your Job Portal Verification Code",
		email.TemplateVerificationCode,
		email.TemplateData{"Name": req.Name, "Code": code},
	); err != nil {
		logger.Error("failed to send verification email", "email", req.Email, "error", err)
		return appErrors.Wrap(err, appErrors.CodeExternalServiceError, "Failed to send verification email", 500)
	}

	return nil
}

// VerifyEmail - подтверждение email кодом с установкой пароля.
// Код одноразовый: после активации статус уходит из pending_email_verification
// и повторная попытка с тем же кодом не находит аккаунт.
func (s *AuthServiceImpl) VerifyEmail(req *dto.VerifyEmailRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrInvalidVerification
		}
		return appErrors.InternalError(err)
	}
	if user.Status != models.UserStatusPendingEmailVerification {
		return appErrors.ErrInvalidVerification
	}
	if user.EmailVerificationCode == nil || user.EmailVerificationExpiresAt == nil {
		return appErrors.InternalError(errors.New("verification data missing for user"))
	}

	// Точное строковое сравнение, без нормализации
	if *user.EmailVerificationCode != req.Code {
		return appErrors.ErrInvalidVerificationCode
	}
	// Код, предъявленный ровно в момент истечения, считается просроченным
	if !user.EmailVerificationExpiresAt.After(time.Now()) {
		return appErrors.ErrVerificationExpired
	}

	// Валидация пароля
	if err := auth.ValidatePassword(req.Password); err != nil {
		return appErrors.ErrWeakPassword
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return appErrors.InternalError(err)
	}

	if err := s.userRepo.Activate(user.ID, passwordHash, time.Now()); err != nil {
		return appErrors.InternalError(err)
	}

	// Best-effort: профиль сотрудника; его отсутствие не отменяет активацию
	if err := s.employeeRepo.Create(&models.EmployeeProfile{UserID: user.ID}); err != nil {
		logger.Error("failed to create employee profile for verified user", "user_id", user.ID, "error", err)
	}

	logger.Info("email verified, user activated", "user_id", user.ID)
	return nil
}

// RegisterEmployer - регистрация работодателя сразу в pending_admin_approval.
// Пароль хешируется немедленно, верификация email не требуется.
func (s *AuthServiceImpl) RegisterEmployer(req *dto.RegisterEmployerRequest) error {
	if existing, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return conflictForStatus(existing.Status)
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return appErrors.InternalError(err)
	}

	// Валидация пароля
	if err := auth.ValidatePassword(req.Password); err != nil {
		return appErrors.ErrWeakPassword
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return appErrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &passwordHash,
		Role:         models.UserRoleEmployer,
		Status:       models.UserStatusPendingAdminApproval,
		CompanyName:  &req.CompanyName,
	}
	if req.CompanyWebsite != "" {
		user.CompanyWebsite = &req.CompanyWebsite
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return appErrors.ErrEmailAlreadyExists
		}
		return appErrors.InternalError(err)
	}

	logger.Info("employer registration pending approval", "email", req.Email)
	return nil
}

// AdminApproveEmployer - одобрение работодателя администратором.
// Идемпотентно: уже активный работодатель - успех без изменений.
func (s *AuthServiceImpl) AdminApproveEmployer(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if user.Role != models.UserRoleEmployer {
		return nil, appErrors.BadRequest(fmt.Sprintf("User %s is not an employer.", userID))
	}
	if user.Status == models.UserStatusActive {
		logger.Warn("employer already active", "user_id", userID)
		return dto.NewUserResponse(user), nil
	}
	if user.Status != models.UserStatusPendingAdminApproval {
		return nil, appErrors.BadRequest(fmt.Sprintf("Employer is not pending approval (current status: %s).", user.Status))
	}

	if err := s.userRepo.UpdateStatus(user.ID, models.UserStatusActive); err != nil {
		return nil, appErrors.InternalError(err)
	}
	user.Status = models.UserStatusActive

	// Письмо об одобрении - best-effort
	s.sendApprovalEmail(user)

	logger.Info("employer approved", "user_id", userID)
	return dto.NewUserResponse(user), nil
}

// Login - аутентификация и выпуск access-токена
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.InternalError(err)
	}

	if !user.HasPassword() {
		return nil, appErrors.ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, *user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	// Проверки статуса в порядке приоритета сообщений:
	// верификация -> одобрение -> блокировка -> общий случай
	if err := checkLoginStatus(user.Status); err != nil {
		return nil, err
	}

	token, claims, err := s.tokens.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	logger.Info("login successful", "user_id", user.ID, "jti", claims.ID)
	return &dto.LoginResponse{
		AccessToken: token,
		UserID:      user.ID,
		Role:        user.Role,
		Name:        user.Name,
	}, nil
}

// ValidateToken выполняет полную проверку предъявленного токена:
// подпись/срок/структура, deny-list, существование и статус аккаунта,
// затем сравнение времени выпуска с passwordChangedAt.
func (s *AuthServiceImpl) ValidateToken(tokenString string) (*dto.AuthenticatedUser, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	if s.denyList.IsRevoked(claims.ID) {
		logger.Warn("rejected revoked token", "jti", claims.ID)
		return nil, appErrors.ErrTokenRevoked
	}

	user, err := s.userRepo.FindByID(claims.Subject)
	if err != nil || user.Status != models.UserStatusActive {
		return nil, appErrors.ErrUnauthorized
	}

	// Любая смена пароля инвалидирует все ранее выпущенные токены.
	// Сравнение с точностью до секунды: iat в токене хранится в секундах.
	if user.PasswordChangedAt != nil && claims.IssuedAt.Unix() < user.PasswordChangedAt.Unix() {
		logger.Warn("rejected token issued before password change", "user_id", user.ID, "jti", claims.ID)
		return nil, appErrors.ErrPasswordChanged
	}

	return &dto.AuthenticatedUser{
		UserID:    user.ID,
		Email:     claims.Email, // из токена
		Role:      user.Role,    // из свежезагруженного аккаунта
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

// Logout отзывает jti текущей сессии
func (s *AuthServiceImpl) Logout(jti string, expSeconds int64) {
	s.denyList.Revoke(jti, expSeconds)
}

// ChangePassword - смена пароля с немедленным отзывом текущей сессии
func (s *AuthServiceImpl) ChangePassword(userID string, req *dto.ChangePasswordRequest, currentJTI string, currentExp int64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if !user.HasPassword() {
		return appErrors.InternalError(errors.New("could not retrieve user credentials"))
	}

	if !auth.CheckPasswordHash(req.OldPassword, *user.PasswordHash) {
		return appErrors.ErrIncorrectPassword
	}

	// Валидация нового пароля
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.ErrWeakPassword
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.InternalError(err)
	}

	// Два отдельных шага: пароль, затем отметка времени. Сбой второго шага
	// возвращается как ошибка, хотя пароль уже мог быть записан.
	if err := s.userRepo.UpdatePassword(userID, newHash); err != nil {
		return appErrors.InternalError(err)
	}
	if err := s.userRepo.SetPasswordChangedAt(userID, time.Now()); err != nil {
		logger.Error("failed to update password changed timestamp", "user_id", userID, "error", err)
		return appErrors.InternalError(err)
	}

	// Сессия, через которую меняли пароль, отзывается немедленно;
	// Revoke с пустыми аргументами - no-op с предупреждением
	s.denyList.Revoke(currentJTI, currentExp)

	logger.Info("password changed", "user_id", userID)
	return nil
}

// ForgotPassword - запрос кода сброса пароля.
// Ответ одинаков вне зависимости от существования аккаунта (анти-перечисление);
// различие скрывает хендлер, возвращающий общий текст в обоих случаях.
func (s *AuthServiceImpl) ForgotPassword(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return appErrors.InternalError(err)
	}

	code, err := s.generateUniqueResetCode()
	if err != nil {
		return err
	}

	// Удаление старых кодов и запись нового - два отдельных стейтмента.
	// Сбой удаления не критичен и только логируется.
	if err := s.resetRepo.DeleteByUserID(user.ID); err != nil {
		logger.Error("non-critical: failed to delete old reset codes", "user_id", user.ID, "error", err)
	}

	token := &models.PasswordResetToken{
		Code:      code,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if err := s.resetRepo.Create(token); err != nil {
		return appErrors.InternalError(err)
	}

	if err := s.emailProvider.SendTemplate(
		[]string{user.Email},
		"Your Password Reset Code",
		email.TemplatePasswordReset,
		email.TemplateData{"Name": user.Name, "Code": code},
	); err != nil {
		logger.Error("failed to send password reset email", "user_id", user.ID, "error", err)
		return appErrors.Wrap(err, appErrors.CodeExternalServiceError, "Failed to send password reset email", 500)
	}

	return nil
}

// ResetPassword - сброс пароля по коду.
// Просроченный код удаляется при обнаружении; использованный - после успеха.
func (s *AuthServiceImpl) ResetPassword(req *dto.ResetPasswordRequest) error {
	token, err := s.resetRepo.FindByCode(req.Code)
	if err != nil {
		if errors.Is(err, repositories.ErrResetTokenNotFound) {
			return appErrors.ErrInvalidResetCode
		}
		return appErrors.InternalError(err)
	}

	if !token.ExpiresAt.After(time.Now()) {
		if err := s.resetRepo.DeleteByID(token.ID); err != nil {
			logger.Error("failed to delete stale reset code", "token_id", token.ID, "error", err)
		}
		return appErrors.ErrResetCodeExpired
	}

	// Валидация нового пароля
	if err := auth.ValidatePassword(req.Password); err != nil {
		return appErrors.ErrWeakPassword
	}

	newHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return appErrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(token.UserID, newHash); err != nil {
		return appErrors.InternalError(err)
	}
	if err := s.userRepo.SetPasswordChangedAt(token.UserID, time.Now()); err != nil {
		logger.Error("failed to update password changed timestamp after reset", "user_id", token.UserID, "error", err)
		return appErrors.InternalError(err)
	}

	if err := s.resetRepo.DeleteByID(token.ID); err != nil {
		logger.Error("failed to delete consumed reset code", "token_id", token.ID, "error", err)
	}

	logger.Info("password reset", "user_id", token.UserID)
	return nil
}

// --- Helper functions ---

// conflictForStatus подбирает ошибку конфликта по текущему статусу аккаунта
func conflictForStatus(status models.UserStatus) *appErrors.AppError {
	switch status {
	case models.UserStatusPendingAdminApproval:
		return appErrors.ErrAlreadyPendingApproval
	case models.UserStatusActive:
		return appErrors.ErrAlreadyActive
	default:
		return appErrors.ErrEmailAlreadyExists
	}
}

// checkLoginStatus возвращает статусную ошибку для неактивного аккаунта
func checkLoginStatus(status models.UserStatus) *appErrors.AppError {
	switch status {
	case models.UserStatusPendingEmailVerification:
		return appErrors.ErrAccountNotVerified
	case models.UserStatusPendingAdminApproval:
		return appErrors.ErrAccountPendingApproval
	case models.UserStatusSuspended:
		return appErrors.ErrAccountSuspended
	case models.UserStatusActive:
		return nil
	default:
		return appErrors.ErrAccountNotActive
	}
}

// generateUniqueResetCode подбирает код, отсутствующий в таблице,
// с ограниченным числом попыток против коллизий
func (s *AuthServiceImpl) generateUniqueResetCode() (string, error) {
	for attempt := 0; attempt < resetCodeMaxRetries; attempt++ {
		code, err := generateSixDigitCode()
		if err != nil {
			return "", appErrors.InternalError(err)
		}
		exists, err := s.resetRepo.CodeExists(code)
		if err != nil {
			return "", appErrors.InternalError(err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", appErrors.InternalError(errors.New("could not generate password reset code"))
}

func (s *AuthServiceImpl) sendApprovalEmail(user *models.User) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		err := s.emailProvider.SendTemplate(
			[]string{user.Email},
			"Your Job Portal Employer Account Has Been Approved!",
			email.TemplateEmployerApproved,
			email.TemplateData{"Name": user.Name, "LoginURL": "/auth/login"},
		)
		if err != nil {
			logger.Error("failed to send approval email", "user_id", user.ID, "email", user.Email, "error", err)
		}
	}()
}

// generateSixDigitCode возвращает код, равномерно распределенный в [100000, 999999]
func generateSixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
