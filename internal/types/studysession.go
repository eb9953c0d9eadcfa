package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StudySessionPlanned   = "planned"
	StudySessionActive    = "active"
	StudySessionCompleted = "completed"
	StudySessionPaused    = "paused"
)

type StudySession struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	StudyPlanID    *uuid.UUID     `gorm:"type:uuid;index" json:"study_plan_id,omitempty"`
	StudyPlan      *StudyPlan     `gorm:"constraint:OnDelete:SET NULL;foreignKey:StudyPlanID;references:ID" json:"study_plan,omitempty"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	Duration       int            `gorm:"column:duration;not null" json:"duration"`
	ActualDuration int            `gorm:"column:actual_duration" json:"actual_duration"`
	StartTime      *time.Time     `gorm:"column:start_time" json:"start_time,omitempty"`
	EndTime        *time.Time     `gorm:"column:end_time" json:"end_time,omitempty"`
	Status         string         `gorm:"column:status;not null" json:"status"`
	Notes          string         `gorm:"column:notes;type:text" json:"notes"`
	TopicsCovered  datatypes.JSON `gorm:"column:topics_covered;type:jsonb" json:"topics_covered"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (StudySession) TableName() string { return "study_session" }
