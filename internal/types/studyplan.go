package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

type StudyPlan struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User              *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title             string         `gorm:"column:title;not null" json:"title"`
	Description       string         `gorm:"column:description;type:text" json:"description"`
	Subject           string         `gorm:"column:subject;not null" json:"subject"`
	DifficultyLevel   string         `gorm:"column:difficulty_level" json:"difficulty_level"`
	EstimatedDuration int            `gorm:"column:estimated_duration;not null;default:0" json:"estimated_duration"`
	IsActive          bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	StudyMaterials    datatypes.JSON `gorm:"column:study_materials;type:jsonb" json:"study_materials"`
	Schedule          datatypes.JSON `gorm:"column:schedule;type:jsonb" json:"schedule"`
	Milestones        datatypes.JSON `gorm:"column:milestones;type:jsonb" json:"milestones"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StudyPlan) TableName() string { return "study_plan" }
