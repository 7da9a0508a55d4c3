package models

import "time"

// Education - запись об образовании в профиле сотрудника
type Education struct {
	BaseModel
	ProfileID    string     `gorm:"not null;index"`
	Institution  string     `gorm:"type:varchar(255);not null"`
	Degree       string     `gorm:"type:varchar(255);not null"`
	FieldOfStudy *string    `gorm:"type:varchar(255)"`
	StartDate    time.Time  `gorm:"not null"`
	EndDate      *time.Time
	Description  *string `gorm:"type:text"`
}
