package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/studywise/studywise-backend/internal/ai"
	"github.com/studywise/studywise-backend/internal/ai/engine/mock"
	"github.com/studywise/studywise-backend/internal/apierr"
	"github.com/studywise/studywise-backend/internal/repos"
	"github.com/studywise/studywise-backend/internal/types"
)

const modelQuestions = `1. What is your education level?
2. Any clinical experience?
3. Hours per week available?
4. Target timeline?
5. Why medicine?`

const modelPlan = `Subjects to Study:
- Human anatomy
- Organic chemistry

Skills to Develop:
- Clinical reasoning

Recommended Resources:
- Khan Academy medicine

Short-term Milestones:
- Finish biology review

Medium-term Milestones:
- Sit the entrance exam

Long-term Milestones:
- Complete medical school

Weekly Tasks:
- Anatomy deep dive (4 hours, high priority)
- Chemistry problem sets (3 hours, high priority)
- Clinical volunteering (3 hours, medium priority)

Daily Activities:
- Flashcard review (20 minutes)`

func newCounselingService(t *testing.T, eng *mock.Engine) (CounselingService, repos.StudyPlanRepo, uuid.UUID) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	user := newTestUser(t, gdb)
	sessionRepo := repos.NewCounselingSessionRepo(gdb, log)
	planRepo := repos.NewStudyPlanRepo(gdb, log)
	gate := startTestGate(t, eng)
	svc := NewCounselingService(gdb, log, gate, sessionRepo, planRepo, 2*time.Second)
	return svc, planRepo, user.ID
}

func TestCounselingFlow_EndToEnd(t *testing.T) {
	eng := mock.New()
	eng.Response = modelQuestions
	svc, planRepo, userID := newCounselingService(t, eng)
	ctx := ctxForUser(userID)

	started, err := svc.StartSession(ctx, "I want to become a doctor")
	require.NoError(t, err)
	require.Equal(t, "Doctor", started.TargetProfession)
	require.Equal(t, modelQuestions, started.InitialQuestions)
	require.Equal(t, types.PlanSourceModel, started.Source)

	eng.Response = modelPlan
	plan, err := svc.GenerateActionPlan(ctx, "doctor", "I have a biology degree and 10 free hours a week.")
	require.NoError(t, err)
	require.Equal(t, started.SessionID, plan.SessionID)
	require.Equal(t, types.SessionStatusPlanGenerated, plan.SessionStatus)
	require.Equal(t, types.PlanSourceModel, plan.Source)
	require.Equal(t, modelPlan, plan.ActionPlan)

	converted, err := svc.ConvertToStudyPlan(ctx, started.SessionID, "")
	require.NoError(t, err)
	require.True(t, converted.Success)
	require.Equal(t, 3, converted.TasksCreated)

	stored, err := planRepo.GetByIDForUser(ctx, nil, converted.StudyPlanID, userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "Career Path: Doctor", stored.Title)
	require.Equal(t, "Doctor", stored.Subject)
	require.Equal(t, 10, stored.EstimatedDuration)
	require.True(t, stored.IsActive)
	require.Contains(t, string(stored.StudyMaterials), "Human anatomy")
	require.Contains(t, string(stored.Schedule), "Anatomy deep dive")

	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, types.SessionStatusConverted, history[0].SessionStatus)
	require.True(t, history[0].HasActionPlan)
}

func TestStartSession_EmptyProfessionIsValidationError(t *testing.T) {
	svc, _, userID := newCounselingService(t, mock.New())
	_, err := svc.StartSession(ctxForUser(userID), "   ")
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)
}

func TestStartSession_FallsBackToTemplate(t *testing.T) {
	eng := mock.New()
	eng.Err = errors.New("runtime offline")
	svc, _, userID := newCounselingService(t, eng)

	started, err := svc.StartSession(ctxForUser(userID), "Software Engineer")
	require.NoError(t, err)
	require.Equal(t, types.PlanSourceTemplate, started.Source)
	// Technology template, not engineering: "software engineer" classifies
	// to technology first.
	require.Contains(t, started.InitialQuestions, "written any code")
	require.Contains(t, started.InitialQuestions, "Software Engineer")
}

func TestGenerateActionPlan_FallbackTemplateConverts(t *testing.T) {
	eng := mock.New()
	eng.Response = modelQuestions
	svc, _, userID := newCounselingService(t, eng)
	ctx := ctxForUser(userID)

	started, err := svc.StartSession(ctx, "doctor")
	require.NoError(t, err)

	eng.Response = ""
	eng.Err = errors.New("runtime offline")
	plan, err := svc.GenerateActionPlan(ctx, "Doctor", "some answers")
	require.NoError(t, err)
	require.Equal(t, types.PlanSourceTemplate, plan.Source)

	converted, err := svc.ConvertToStudyPlan(ctx, started.SessionID, "")
	require.NoError(t, err)
	require.True(t, converted.Success)
	require.Greater(t, converted.TasksCreated, 0)
}

func TestGenerateActionPlan_RequiresAnswers(t *testing.T) {
	svc, _, userID := newCounselingService(t, mock.New())
	_, err := svc.GenerateActionPlan(ctxForUser(userID), "doctor", "  ")
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)
}

func TestGenerateActionPlan_NoSessionIsNotFound(t *testing.T) {
	svc, _, userID := newCounselingService(t, mock.New())
	_, err := svc.GenerateActionPlan(ctxForUser(userID), "doctor", "answers")
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 404, apiErr.Status)
}

func TestGenerateActionPlan_SecondCallIsStateError(t *testing.T) {
	eng := mock.New()
	eng.Response = modelQuestions
	svc, _, userID := newCounselingService(t, eng)
	ctx := ctxForUser(userID)

	_, err := svc.StartSession(ctx, "doctor")
	require.NoError(t, err)
	eng.Response = modelPlan
	_, err = svc.GenerateActionPlan(ctx, "doctor", "answers")
	require.NoError(t, err)

	_, err = svc.GenerateActionPlan(ctx, "doctor", "more answers")
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 409, apiErr.Status)
}

func TestConvert_WithoutPlanIsStateError(t *testing.T) {
	eng := mock.New()
	eng.Response = modelQuestions
	svc, _, userID := newCounselingService(t, eng)
	ctx := ctxForUser(userID)

	started, err := svc.StartSession(ctx, "doctor")
	require.NoError(t, err)

	_, err = svc.ConvertToStudyPlan(ctx, started.SessionID, "")
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 409, apiErr.Status)
}

func TestConvert_ForeignSessionIsNotFound(t *testing.T) {
	eng := mock.New()
	eng.Response = modelQuestions
	svc, _, userID := newCounselingService(t, eng)
	ctx := ctxForUser(userID)

	started, err := svc.StartSession(ctx, "doctor")
	require.NoError(t, err)
	eng.Response = modelPlan
	_, err = svc.GenerateActionPlan(ctx, "doctor", "answers")
	require.NoError(t, err)

	otherCtx := ctxForUser(uuid.New())
	_, err = svc.ConvertToStudyPlan(otherCtx, started.SessionID, "")
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 404, apiErr.Status)
}

func TestConvert_RepeatCreatesNewPlan(t *testing.T) {
	eng := mock.New()
	eng.Response = modelQuestions
	svc, planRepo, userID := newCounselingService(t, eng)
	ctx := ctxForUser(userID)

	started, err := svc.StartSession(ctx, "doctor")
	require.NoError(t, err)
	eng.Response = modelPlan
	_, err = svc.GenerateActionPlan(ctx, "doctor", "answers")
	require.NoError(t, err)

	first, err := svc.ConvertToStudyPlan(ctx, started.SessionID, "First Plan")
	require.NoError(t, err)
	second, err := svc.ConvertToStudyPlan(ctx, started.SessionID, "Second Plan")
	require.NoError(t, err)
	require.NotEqual(t, first.StudyPlanID, second.StudyPlanID)

	plans, err := planRepo.ListByUser(ctx, nil, userID, false)
	require.NoError(t, err)
	require.Len(t, plans, 2)
}

func TestInferrerContract(t *testing.T) {
	var _ Inferrer = (*ai.Gate)(nil)
}
