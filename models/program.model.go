package models

import "time"

// Program is a service clients can be enrolled in. Names are unique.
type Program struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"uniqueIndex;not null"`
	Description *string      `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:ProgramID"`
}
