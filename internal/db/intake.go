package db

import (
	"time"

	"gorm.io/gorm"
)

// Intake triage states.
const (
	IntakeStatusNew        = "new"
	IntakeStatusReviewing  = "reviewing"
	IntakeStatusInProgress = "in_progress"
	IntakeStatusContracted = "contracted"
	IntakeStatusClosed     = "closed"
)

// IntakeStatuses enumerates the allowed intake states.
var IntakeStatuses = []string{
	IntakeStatusNew,
	IntakeStatusReviewing,
	IntakeStatusInProgress,
	IntakeStatusContracted,
	IntakeStatusClosed,
}

// IntakeResponse is a diagnostic-intake submission triaged by an admin.
// ContractEndAt is present only while the status is contracted; ExpiresAt
// marks when the record falls out of the retention window.
type IntakeResponse struct {
	gorm.Model
	Name          string `gorm:"size:160"`
	Email         string `gorm:"size:254"`
	Topic         string `gorm:"size:160"`
	Details       string `gorm:"type:text"`
	Status        string `gorm:"size:16;not null;default:new"`
	ContractEndAt *time.Time
	ExpiresAt     time.Time `gorm:"index"`
}

// TableName keeps the table name stable across gorm versions.
func (IntakeResponse) TableName() string {
	return "intake_responses"
}
