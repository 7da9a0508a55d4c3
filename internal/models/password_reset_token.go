package models

import "time"

// PasswordResetToken - одноразовый 6-значный код сброса пароля.
// Логически на пользователя существует не более одного неистекшего кода:
// старые записи удаляются перед выдачей нового (best-effort, без транзакции).
type PasswordResetToken struct {
	BaseModel
	Code      string    `gorm:"type:varchar(6);uniqueIndex;not null"`
	UserID    string    `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
}
