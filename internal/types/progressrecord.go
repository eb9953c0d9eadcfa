package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProgressRecord captures one study outcome: time spent on a topic, how many
// sessions it took, and optional accuracy/retention scores. Summary and
// analytics views aggregate these per user.
type ProgressRecord struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User              *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date              time.Time      `gorm:"column:date;not null;index" json:"date"`
	Subject           string         `gorm:"column:subject" json:"subject"`
	Topic             string         `gorm:"column:topic" json:"topic"`
	TimeSpent         int            `gorm:"column:time_spent" json:"time_spent"`
	SessionsCompleted int            `gorm:"column:sessions_completed" json:"sessions_completed"`
	AccuracyScore     *float64       `gorm:"column:accuracy_score" json:"accuracy_score,omitempty"`
	RetentionScore    *float64       `gorm:"column:retention_score" json:"retention_score,omitempty"`
	DifficultyLevel   string         `gorm:"column:difficulty_level" json:"difficulty_level"`
	LearningPatterns  datatypes.JSON `gorm:"column:learning_patterns;type:jsonb" json:"learning_patterns,omitempty"`
	Recommendations   datatypes.JSON `gorm:"column:recommendations;type:jsonb" json:"recommendations,omitempty"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
}

func (ProgressRecord) TableName() string { return "progress_record" }
