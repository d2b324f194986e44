package models

import "time"

// Client is a person tracked by the system. Name is stored lower-case so that
// search can stay a plain substring match.
type Client struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"index;not null"`
	Age         int          `json:"age" gorm:"not null"`
	Gender      string       `json:"gender" gorm:"not null"`
	Phone       string       `json:"phone" gorm:"not null"`
	Address     string       `json:"address" gorm:"not null"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:ClientID"`
}
