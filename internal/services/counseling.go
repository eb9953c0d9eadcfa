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
	"github.com/studywise/studywise-backend/internal/normalization"
	"github.com/studywise/studywise-backend/internal/repos"
	"github.com/studywise/studywise-backend/internal/requestdata"
	"github.com/studywise/studywise-backend/internal/types"
)

// Inferrer is what the counseling service needs from the inference gate.
type Inferrer interface {
	Infer(ctx context.Context, prompt string, maxWait time.Duration) (string, error)
}

type StartSessionResult struct {
	SessionID        uuid.UUID `json:"session_id"`
	TargetProfession string    `json:"target_profession"`
	InitialQuestions string    `json:"initial_questions"`
	Source           string    `json:"source"`
}

type ActionPlanResult struct {
	SessionID     uuid.UUID `json:"session_id"`
	ActionPlan    string    `json:"action_plan"`
	SessionStatus string    `json:"session_status"`
	Source        string    `json:"source"`
}

type SessionSummary struct {
	SessionID        uuid.UUID `json:"session_id"`
	TargetProfession string    `json:"target_profession"`
	SessionStatus    string    `json:"session_status"`
	CreatedAt        time.Time `json:"created_at"`
	HasActionPlan    bool      `json:"has_action_plan"`
	ActionPlan       string    `json:"action_plan,omitempty"`
}

type ConvertResult struct {
	Success      bool      `json:"success"`
	StudyPlanID  uuid.UUID `json:"study_plan_id"`
	TasksCreated int       `json:"tasks_created"`
	Message      string    `json:"message"`
}

// CounselingService drives the career counseling state machine:
// active -> plan_generated -> converted. Sessions are append-only; model
// unreliability never surfaces as an error, only as template-sourced output.
type CounselingService interface {
	StartSession(ctx context.Context, profession string) (*StartSessionResult, error)
	GenerateActionPlan(ctx context.Context, targetProfession, answers string) (*ActionPlanResult, error)
	History(ctx context.Context) ([]*SessionSummary, error)
	ConvertToStudyPlan(ctx context.Context, sessionID uuid.UUID, planTitle string) (*ConvertResult, error)
}

type counselingService struct {
	db          *gorm.DB
	log         *logger.Logger
	gate        Inferrer
	sessionRepo repos.CounselingSessionRepo
	planRepo    repos.StudyPlanRepo
	inferWait   time.Duration
}

func NewCounselingService(
	db *gorm.DB,
	log *logger.Logger,
	gate Inferrer,
	sessionRepo repos.CounselingSessionRepo,
	planRepo repos.StudyPlanRepo,
	inferWait time.Duration,
) CounselingService {
	return &counselingService{
		db:          db,
		log:         log.With("service", "CounselingService"),
		gate:        gate,
		sessionRepo: sessionRepo,
		planRepo:    planRepo,
		inferWait:   inferWait,
	}
}

func (cs *counselingService) StartSession(ctx context.Context, profession string) (*StartSessionResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	normalized := normalization.NormalizeProfession(profession)
	if normalized == "" {
		return nil, apierr.Validation("target profession must not be empty")
	}

	category := ai.Classify(normalized)
	questions, source := cs.generate(ctx, ai.BuildQuestionsPrompt(normalized), func() string {
		return ai.FallbackQuestions(category, normalized)
	})
	questions = ai.ParseQuestions(questions)

	session := &types.CounselingSession{
		ID:               uuid.New(),
		UserID:           rd.UserID,
		TargetProfession: normalized,
		SessionStatus:    types.SessionStatusActive,
		InitialQuestions: questions,
	}
	if _, err := cs.sessionRepo.Create(ctx, nil, []*types.CounselingSession{session}); err != nil {
		return nil, fmt.Errorf("failed to create counseling session: %w", err)
	}
	cs.log.Info("Counseling session started", "session_id", session.ID, "category", category, "source", source)

	return &StartSessionResult{
		SessionID:        session.ID,
		TargetProfession: normalized,
		InitialQuestions: questions,
		Source:           source,
	}, nil
}

func (cs *counselingService) GenerateActionPlan(ctx context.Context, targetProfession, answers string) (*ActionPlanResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	normalized := normalization.NormalizeProfession(targetProfession)
	if normalized == "" {
		return nil, apierr.Validation("target profession must not be empty")
	}
	if strings.TrimSpace(answers) == "" {
		return nil, apierr.Validation("user responses must not be empty")
	}

	session, err := cs.sessionRepo.LatestByProfession(ctx, nil, rd.UserID, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to load counseling session: %w", err)
	}
	if session == nil {
		return nil, apierr.NotFound("no counseling session found for %s", normalized)
	}
	if session.SessionStatus != types.SessionStatusActive {
		return nil, apierr.State("session %s already has an action plan", session.ID)
	}

	category := ai.Classify(normalized)
	planText, source := cs.generate(ctx, ai.BuildPlanPrompt(normalized, answers), func() string {
		return ai.FallbackActionPlan(category, normalized)
	})

	session.UserResponses = answers
	session.ActionPlan = planText
	session.PlanSource = source
	session.SessionStatus = types.SessionStatusPlanGenerated
	if err := cs.sessionRepo.Update(ctx, nil, session); err != nil {
		return nil, fmt.Errorf("failed to persist action plan: %w", err)
	}
	cs.log.Info("Action plan generated", "session_id", session.ID, "source", source)

	return &ActionPlanResult{
		SessionID:     session.ID,
		ActionPlan:    planText,
		SessionStatus: session.SessionStatus,
		Source:        source,
	}, nil
}

func (cs *counselingService) History(ctx context.Context) ([]*SessionSummary, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	sessions, err := cs.sessionRepo.ListByUser(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list counseling sessions: %w", err)
	}
	summaries := make([]*SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, &SessionSummary{
			SessionID:        s.ID,
			TargetProfession: s.TargetProfession,
			SessionStatus:    s.SessionStatus,
			CreatedAt:        s.CreatedAt,
			HasActionPlan:    s.HasActionPlan(),
			ActionPlan:       s.ActionPlan,
		})
	}
	return summaries, nil
}

func (cs *counselingService) ConvertToStudyPlan(ctx context.Context, sessionID uuid.UUID, planTitle string) (*ConvertResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	session, err := cs.sessionRepo.GetByIDForUser(ctx, nil, sessionID, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load counseling session: %w", err)
	}
	if session == nil {
		return nil, apierr.NotFound("counseling session %s not found", sessionID)
	}
	if !session.HasActionPlan() {
		return nil, apierr.State("session %s has no action plan to convert", sessionID)
	}

	// Parsing is pure and cheap; re-parse rather than cache.
	parsed := ai.ParsePlan(session.ActionPlan)
	draft := ai.BuildStudyPlanDraft(parsed, session.ID, session.TargetProfession, planTitle, "")

	materials, err := json.Marshal(draft.StudyMaterials)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal study materials: %w", err)
	}
	schedule, err := json.Marshal(draft.Schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedule: %w", err)
	}
	milestones, err := json.Marshal(draft.Milestones)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal milestones: %w", err)
	}

	plan := &types.StudyPlan{
		ID:                uuid.New(),
		UserID:            rd.UserID,
		Title:             draft.Title,
		Description:       draft.Description,
		Subject:           draft.Subject,
		DifficultyLevel:   draft.DifficultyLevel,
		EstimatedDuration: draft.EstimatedDuration,
		IsActive:          true,
		StudyMaterials:    datatypes.JSON(materials),
		Schedule:          datatypes.JSON(schedule),
		Milestones:        datatypes.JSON(milestones),
	}

	// Re-conversion is permitted and always produces a new study plan; the
	// session just stays converted.
	txErr := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := cs.planRepo.Create(ctx, tx, []*types.StudyPlan{plan}); cErr != nil {
			return fmt.Errorf("failed to create study plan: %w", cErr)
		}
		session.SessionStatus = types.SessionStatusConverted
		if uErr := cs.sessionRepo.Update(ctx, tx, session); uErr != nil {
			return fmt.Errorf("failed to mark session converted: %w", uErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	cs.log.Info("Counseling session converted", "session_id", session.ID, "study_plan_id", plan.ID, "tasks", len(parsed.WeeklyTasks))

	return &ConvertResult{
		Success:      true,
		StudyPlanID:  plan.ID,
		TasksCreated: len(parsed.WeeklyTasks),
		Message:      fmt.Sprintf("Study plan created from career counseling session for %s", session.TargetProfession),
	}, nil
}

// generate runs the prompt through the gate and falls back to the template
// when inference fails or times out. Model unreliability is absorbed here;
// callers always receive usable text.
func (cs *counselingService) generate(ctx context.Context, prompt string, fallback func() string) (string, string) {
	text, err := cs.gate.Infer(ctx, prompt, cs.inferWait)
	if err != nil {
		cs.log.Warn("Inference failed, using template fallback", "error", err)
		return fallback(), types.PlanSourceTemplate
	}
	return text, types.PlanSourceModel
}
