package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password      string    `gorm:"not null;column:password" json:"-"`
	FullName      string    `gorm:"column:full_name" json:"full_name"`
	LearningStyle string    `gorm:"column:learning_style" json:"learning_style"`
	StudyGoals    string    `gorm:"column:study_goals;type:text" json:"study_goals"`
	Timezone      string    `gorm:"column:timezone" json:"timezone"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }
