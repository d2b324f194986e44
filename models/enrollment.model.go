package models

import "time"

// Enrollment links one client to one program. The (ClientID, ProgramID) pair is unique.
type Enrollment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ClientID   uint      `json:"clientId" gorm:"not null;uniqueIndex:idx_enrollment_client_program"`
	ProgramID  uint      `json:"programId" gorm:"not null;index;uniqueIndex:idx_enrollment_client_program"`
	EnrolledAt time.Time `json:"enrolledAt" gorm:"autoCreateTime"`
	Client     *Client   `json:"client,omitempty"`
	Program    *Program  `json:"program,omitempty"`
}
