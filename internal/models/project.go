package models

import "time"

// Project - пет-проект или рабочий проект в портфолио сотрудника
type Project struct {
	BaseModel
	ProfileID        string `gorm:"not null;index"`
	Title            string `gorm:"type:varchar(255);not null"`
	Description      string `gorm:"type:text;not null"`
	TechnologiesUsed string `gorm:"type:text"` // список технологий через запятую
	StartDate        *time.Time
	EndDate          *time.Time // nil - проект продолжается
	ProjectURL       *string    `gorm:"type:varchar(500)"`
	RepositoryURL    *string    `gorm:"type:varchar(500)"`
}

// TechnologyList разбирает поле TechnologiesUsed в срез строк
func (p *Project) TechnologyList() []string {
	return splitCommaList(p.TechnologiesUsed)
}

func (p *Project) SetTechnologyList(technologies []string) {
	p.TechnologiesUsed = joinCommaList(technologies)
}
