package models

import "time"

type User struct {
	BaseModel
	Name         string     `gorm:"not null"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash *string    // NULL до активации (сотрудник устанавливает пароль при верификации email)
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(40);default:'pending_email_verification'"`

	// Код верификации email (6 цифр), заполнен только пока статус pending_email_verification
	EmailVerificationCode      *string `gorm:"type:varchar(6)"`
	EmailVerificationExpiresAt *time.Time

	// Устанавливается при каждой установке/смене пароля; инвалидирует ранее выданные токены
	PasswordChangedAt *time.Time

	// Поля работодателя
	CompanyName    *string `gorm:"type:varchar(255)"`
	CompanyWebsite *string `gorm:"type:varchar(500)"`

	// Relations
	EmployeeProfile *EmployeeProfile     `gorm:"foreignKey:UserID"`
	ResetTokens     []PasswordResetToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// HasPassword - true если пароль уже установлен (аккаунт проходил активацию)
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
