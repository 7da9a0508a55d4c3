package models

import (
	"strings"
	"time"
)

type Job struct {
	BaseModel
	Title          string `gorm:"type:varchar(255);not null;index"`
	Description    string `gorm:"type:text;not null"`
	Location       string `gorm:"type:varchar(255);index"`
	SkillsRequired string `gorm:"type:text"` // через запятую, как в профиле сотрудника
	CompanyName    string `gorm:"type:varchar(255)"`
	SalaryMin      *int
	SalaryMax      *int
	PostedAt       time.Time `gorm:"not null;index"`

	EmployerID string `gorm:"not null;index"`
	Employer   *User  `gorm:"foreignKey:EmployerID;constraint:OnDelete:CASCADE"`

	Applications []JobApplication `gorm:"foreignKey:JobID"`
}

func (j *Job) SkillList() []string {
	return splitCommaList(j.SkillsRequired)
}

func (j *Job) SetSkillList(skills []string) {
	j.SkillsRequired = joinCommaList(skills)
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinCommaList(items []string) string {
	return strings.Join(items, ",")
}
