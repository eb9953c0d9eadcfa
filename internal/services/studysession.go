package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studywise/studywise-backend/internal/apierr"
	"github.com/studywise/studywise-backend/internal/logger"
	"github.com/studywise/studywise-backend/internal/repos"
	"github.com/studywise/studywise-backend/internal/requestdata"
	"github.com/studywise/studywise-backend/internal/types"
)

type CreateStudySessionInput struct {
	StudyPlanID *uuid.UUID `json:"study_plan_id"`
	Title       string     `json:"title"`
	Duration    int        `json:"duration"`
}

type StudySessionService interface {
	CreateSession(ctx context.Context, input *CreateStudySessionInput) (*types.StudySession, error)
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]*types.StudySession, error)
	StartSession(ctx context.Context, sessionID uuid.UUID) (*types.StudySession, error)
	CompleteSession(ctx context.Context, sessionID uuid.UUID, notes string) (*types.StudySession, error)
}

type studySessionService struct {
	db           *gorm.DB
	log          *logger.Logger
	sessionRepo  repos.StudySessionRepo
	planRepo     repos.StudyPlanRepo
	progressRepo repos.ProgressRecordRepo
}

func NewStudySessionService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.StudySessionRepo,
	planRepo repos.StudyPlanRepo,
	progressRepo repos.ProgressRecordRepo,
) StudySessionService {
	return &studySessionService{
		db:           db,
		log:          log.With("service", "StudySessionService"),
		sessionRepo:  sessionRepo,
		planRepo:     planRepo,
		progressRepo: progressRepo,
	}
}

func (sss *studySessionService) CreateSession(ctx context.Context, input *CreateStudySessionInput) (*types.StudySession, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apierr.Validation("title is required")
	}
	if input.Duration <= 0 {
		return nil, apierr.Validation("duration must be a positive number of minutes")
	}
	if input.StudyPlanID != nil {
		plan, err := sss.planRepo.GetByIDForUser(ctx, nil, *input.StudyPlanID, rd.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load study plan: %w", err)
		}
		if plan == nil {
			return nil, apierr.NotFound("study plan %s not found", *input.StudyPlanID)
		}
	}

	session := &types.StudySession{
		ID:          uuid.New(),
		UserID:      rd.UserID,
		StudyPlanID: input.StudyPlanID,
		Title:       strings.TrimSpace(input.Title),
		Duration:    input.Duration,
		Status:      types.StudySessionPlanned,
	}
	if _, err := sss.sessionRepo.Create(ctx, nil, []*types.StudySession{session}); err != nil {
		return nil, fmt.Errorf("failed to create study session: %w", err)
	}
	return session, nil
}

func (sss *studySessionService) ListByPlan(ctx context.Context, planID uuid.UUID) ([]*types.StudySession, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	plan, err := sss.planRepo.GetByIDForUser(ctx, nil, planID, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load study plan: %w", err)
	}
	if plan == nil {
		return nil, apierr.NotFound("study plan %s not found", planID)
	}
	sessions, err := sss.sessionRepo.ListByPlan(ctx, nil, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list study sessions: %w", err)
	}
	return sessions, nil
}

func (sss *studySessionService) StartSession(ctx context.Context, sessionID uuid.UUID) (*types.StudySession, error) {
	session, err := sss.getOwned(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != types.StudySessionPlanned && session.Status != types.StudySessionPaused {
		return nil, apierr.State("study session %s cannot be started from status %s", sessionID, session.Status)
	}
	now := time.Now()
	if session.StartTime == nil {
		session.StartTime = &now
	}
	session.Status = types.StudySessionActive
	if err := sss.sessionRepo.Update(ctx, nil, session); err != nil {
		return nil, fmt.Errorf("failed to start study session: %w", err)
	}
	return session, nil
}

func (sss *studySessionService) CompleteSession(ctx context.Context, sessionID uuid.UUID, notes string) (*types.StudySession, error) {
	session, err := sss.getOwned(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != types.StudySessionActive {
		return nil, apierr.State("study session %s is not active", sessionID)
	}
	now := time.Now()
	session.EndTime = &now
	if session.StartTime != nil {
		session.ActualDuration = int(now.Sub(*session.StartTime).Minutes())
	}
	session.Status = types.StudySessionCompleted
	if notes != "" {
		session.Notes = notes
	}

	subject := "General"
	if session.StudyPlanID != nil {
		plan, pErr := sss.planRepo.GetByIDForUser(ctx, nil, *session.StudyPlanID, session.UserID)
		if pErr != nil {
			return nil, fmt.Errorf("failed to load study plan for completed session: %w", pErr)
		}
		if plan != nil && plan.Subject != "" {
			subject = plan.Subject
		}
	}

	txErr := sss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := sss.sessionRepo.Update(ctx, tx, session); err != nil {
			return fmt.Errorf("failed to complete study session: %w", err)
		}
		if session.ActualDuration > 0 {
			record := &types.ProgressRecord{
				ID:                uuid.New(),
				UserID:            session.UserID,
				Date:              now,
				Subject:           subject,
				Topic:             session.Title,
				TimeSpent:         session.ActualDuration,
				SessionsCompleted: 1,
				DifficultyLevel:   types.DifficultyIntermediate,
			}
			if _, err := sss.progressRepo.Create(ctx, tx, []*types.ProgressRecord{record}); err != nil {
				return fmt.Errorf("failed to record session progress: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return session, nil
}

func (sss *studySessionService) getOwned(ctx context.Context, sessionID uuid.UUID) (*types.StudySession, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	session, err := sss.sessionRepo.GetByIDForUser(ctx, nil, sessionID, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load study session: %w", err)
	}
	if session == nil {
		return nil, apierr.NotFound("study session %s not found", sessionID)
	}
	return session, nil
}
