package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusActive        = "active"
	SessionStatusPlanGenerated = "plan_generated"
	SessionStatusConverted     = "converted"
)

const (
	PlanSourceModel    = "model"
	PlanSourceTemplate = "template"
)

// CounselingSession is append-only: the questions, responses and plan
// columns fill in as the session advances, nothing is ever removed.
type CounselingSession struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TargetProfession string    `gorm:"column:target_profession;not null" json:"target_profession"`
	SessionStatus    string    `gorm:"column:session_status;not null" json:"session_status"`
	InitialQuestions string    `gorm:"column:initial_questions;type:text" json:"initial_questions"`
	UserResponses    string    `gorm:"column:user_responses;type:text" json:"user_responses"`
	ActionPlan       string    `gorm:"column:action_plan;type:text" json:"action_plan"`
	PlanSource       string    `gorm:"column:plan_source" json:"plan_source"`
	SessionNotes     string    `gorm:"column:session_notes;type:text" json:"session_notes"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (CounselingSession) TableName() string { return "career_counseling_session" }

func (cs *CounselingSession) HasActionPlan() bool {
	return cs.ActionPlan != ""
}
