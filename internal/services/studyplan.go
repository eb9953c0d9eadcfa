package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/studywise/studywise-backend/internal/ai"
	"github.com/studywise/studywise-backend/internal/apierr"
	"github.com/studywise/studywise-backend/internal/logger"
	"github.com/studywise/studywise-backend/internal/repos"
	"github.com/studywise/studywise-backend/internal/requestdata"
	"github.com/studywise/studywise-backend/internal/types"
)

type CreateStudyPlanInput struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Subject           string          `json:"subject"`
	DifficultyLevel   string          `json:"difficulty_level"`
	EstimatedDuration int             `json:"estimated_duration"`
	StudyMaterials    json.RawMessage `json:"study_materials"`
	Schedule          json.RawMessage `json:"schedule"`
	Milestones        json.RawMessage `json:"milestones"`
}

type UpdateStudyPlanInput struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	DifficultyLevel   *string `json:"difficulty_level"`
	EstimatedDuration *int    `json:"estimated_duration"`
	IsActive          *bool   `json:"is_active"`
}

type GenerateStudyPlanResult struct {
	StudyPlan *types.StudyPlan `json:"study_plan"`
	Source    string           `json:"source"`
}

type StudyPlanService interface {
	CreatePlan(ctx context.Context, input *CreateStudyPlanInput) (*types.StudyPlan, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (*types.StudyPlan, error)
	ListPlans(ctx context.Context, activeOnly bool) ([]*types.StudyPlan, error)
	UpdatePlan(ctx context.Context, planID uuid.UUID, input *UpdateStudyPlanInput) (*types.StudyPlan, error)
	DeactivatePlan(ctx context.Context, planID uuid.UUID) error
	GenerateAIPlan(ctx context.Context, subject string, durationWeeks int, difficulty string) (*GenerateStudyPlanResult, error)
}

type studyPlanService struct {
	db        *gorm.DB
	log       *logger.Logger
	gate      Inferrer
	planRepo  repos.StudyPlanRepo
	inferWait time.Duration
}

func NewStudyPlanService(
	db *gorm.DB,
	log *logger.Logger,
	gate Inferrer,
	planRepo repos.StudyPlanRepo,
	inferWait time.Duration,
) StudyPlanService {
	return &studyPlanService{
		db:        db,
		log:       log.With("service", "StudyPlanService"),
		gate:      gate,
		planRepo:  planRepo,
		inferWait: inferWait,
	}
}

func (sps *studyPlanService) CreatePlan(ctx context.Context, input *CreateStudyPlanInput) (*types.StudyPlan, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apierr.Validation("title is required")
	}
	if strings.TrimSpace(input.Subject) == "" {
		return nil, apierr.Validation("subject is required")
	}
	difficulty := input.DifficultyLevel
	if difficulty == "" {
		difficulty = types.DifficultyBeginner
	}
	switch difficulty {
	case types.DifficultyBeginner, types.DifficultyIntermediate, types.DifficultyAdvanced:
	default:
		return nil, apierr.Validation("difficulty_level must be beginner, intermediate, or advanced")
	}

	plan := &types.StudyPlan{
		ID:                uuid.New(),
		UserID:            rd.UserID,
		Title:             strings.TrimSpace(input.Title),
		Description:       input.Description,
		Subject:           strings.TrimSpace(input.Subject),
		DifficultyLevel:   difficulty,
		EstimatedDuration: input.EstimatedDuration,
		IsActive:          true,
		StudyMaterials:    datatypes.JSON(input.StudyMaterials),
		Schedule:          datatypes.JSON(input.Schedule),
		Milestones:        datatypes.JSON(input.Milestones),
	}
	if _, err := sps.planRepo.Create(ctx, nil, []*types.StudyPlan{plan}); err != nil {
		return nil, fmt.Errorf("failed to create study plan: %w", err)
	}
	return plan, nil
}

func (sps *studyPlanService) GetPlan(ctx context.Context, planID uuid.UUID) (*types.StudyPlan, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	plan, err := sps.planRepo.GetByIDForUser(ctx, nil, planID, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load study plan: %w", err)
	}
	if plan == nil {
		return nil, apierr.NotFound("study plan %s not found", planID)
	}
	return plan, nil
}

func (sps *studyPlanService) ListPlans(ctx context.Context, activeOnly bool) ([]*types.StudyPlan, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	plans, err := sps.planRepo.ListByUser(ctx, nil, rd.UserID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list study plans: %w", err)
	}
	return plans, nil
}

func (sps *studyPlanService) UpdatePlan(ctx context.Context, planID uuid.UUID, input *UpdateStudyPlanInput) (*types.StudyPlan, error) {
	plan, err := sps.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apierr.Validation("title must not be empty")
		}
		plan.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.DifficultyLevel != nil {
		switch *input.DifficultyLevel {
		case types.DifficultyBeginner, types.DifficultyIntermediate, types.DifficultyAdvanced:
			plan.DifficultyLevel = *input.DifficultyLevel
		default:
			return nil, apierr.Validation("difficulty_level must be beginner, intermediate, or advanced")
		}
	}
	if input.EstimatedDuration != nil {
		plan.EstimatedDuration = *input.EstimatedDuration
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}
	if err := sps.planRepo.Update(ctx, nil, plan); err != nil {
		return nil, fmt.Errorf("failed to update study plan: %w", err)
	}
	return plan, nil
}

func (sps *studyPlanService) DeactivatePlan(ctx context.Context, planID uuid.UUID) error {
	if _, err := sps.GetPlan(ctx, planID); err != nil {
		return err
	}
	rd := requestdata.GetRequestData(ctx)
	if err := sps.planRepo.Deactivate(ctx, nil, planID, rd.UserID); err != nil {
		return fmt.Errorf("failed to deactivate study plan: %w", err)
	}
	return nil
}

// GenerateAIPlan builds a plan through the inference gate; when the model
// is unavailable it falls back to a deterministic outline, same as the
// counseling flow.
func (sps *studyPlanService) GenerateAIPlan(ctx context.Context, subject string, durationWeeks int, difficulty string) (*GenerateStudyPlanResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, apierr.Validation("subject is required")
	}
	if durationWeeks <= 0 {
		durationWeeks = 4
	}
	if difficulty == "" {
		difficulty = types.DifficultyBeginner
	}
	switch difficulty {
	case types.DifficultyBeginner, types.DifficultyIntermediate, types.DifficultyAdvanced:
	default:
		return nil, apierr.Validation("difficulty_level must be beginner, intermediate, or advanced")
	}

	source := types.PlanSourceModel
	text, err := sps.gate.Infer(ctx, ai.BuildStudyPlanPrompt(subject, durationWeeks, difficulty), sps.inferWait)
	if err != nil {
		sps.log.Warn("Inference failed, using outline fallback", "error", err)
		text = ai.FallbackStudyPlanOutline(subject, durationWeeks)
		source = types.PlanSourceTemplate
	}

	parsed := ai.ParsePlan(text)
	materials, err := json.Marshal(ai.StudyMaterials{
		Subjects:  parsed.Subjects,
		Skills:    parsed.Skills,
		Resources: parsed.Resources,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal study materials: %w", err)
	}
	schedule, err := json.Marshal(ai.Schedule{
		WeeklyTasks:     parsed.WeeklyTasks,
		DailyActivities: parsed.DailyActivities,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedule: %w", err)
	}
	milestones, err := json.Marshal(parsed.Milestones)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal milestones: %w", err)
	}

	plan := &types.StudyPlan{
		ID:                uuid.New(),
		UserID:            rd.UserID,
		Title:             fmt.Sprintf("AI Study Plan: %s", subject),
		Description:       fmt.Sprintf("%d-week %s study plan for %s.", durationWeeks, difficulty, subject),
		Subject:           subject,
		DifficultyLevel:   difficulty,
		EstimatedDuration: ai.EstimateWeeklyHours(parsed.WeeklyTasks),
		IsActive:          true,
		StudyMaterials:    datatypes.JSON(materials),
		Schedule:          datatypes.JSON(schedule),
		Milestones:        datatypes.JSON(milestones),
	}
	if _, err := sps.planRepo.Create(ctx, nil, []*types.StudyPlan{plan}); err != nil {
		return nil, fmt.Errorf("failed to create study plan: %w", err)
	}
	sps.log.Info("AI study plan generated", "study_plan_id", plan.ID, "source", source)

	return &GenerateStudyPlanResult{StudyPlan: plan, Source: source}, nil
}
