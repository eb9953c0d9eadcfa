package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReminderTypeStudySession = "study_session"
	ReminderTypeBreak        = "break"
	ReminderTypeCustom       = "custom"
)

type Reminder struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User              *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title             string    `gorm:"column:title;not null" json:"title"`
	Message           string    `gorm:"column:message;type:text" json:"message"`
	ReminderType      string    `gorm:"column:reminder_type" json:"reminder_type"`
	ScheduledTime     time.Time `gorm:"column:scheduled_time;not null" json:"scheduled_time"`
	IsSent            bool      `gorm:"column:is_sent;not null;default:false" json:"is_sent"`
	IsRecurring       bool      `gorm:"column:is_recurring;not null;default:false" json:"is_recurring"`
	RecurrencePattern string    `gorm:"column:recurrence_pattern" json:"recurrence_pattern"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

func (Reminder) TableName() string { return "reminder" }
