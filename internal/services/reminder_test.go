package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studywise/studywise-backend/internal/apierr"
	"github.com/studywise/studywise-backend/internal/repos"
	"github.com/studywise/studywise-backend/internal/types"
)

func newReminderService(t *testing.T) (ReminderService, *gorm.DB, uuid.UUID) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	user := newTestUser(t, gdb)
	svc := NewReminderService(gdb, log, repos.NewReminderRepo(gdb, log), repos.NewProgressRecordRepo(gdb, log))
	return svc, gdb, user.ID
}

func seedProgressRecord(t *testing.T, gdb *gorm.DB, userID uuid.UUID, subject string, date time.Time) {
	t.Helper()
	require.NoError(t, gdb.Create(&types.ProgressRecord{
		ID:                uuid.New(),
		UserID:            userID,
		Date:              date,
		Subject:           subject,
		Topic:             "seed",
		TimeSpent:         30,
		SessionsCompleted: 1,
	}).Error)
}

func TestReminderLifecycle(t *testing.T) {
	svc, _, userID := newReminderService(t)
	ctx := ctxForUser(userID)

	created, err := svc.CreateReminder(ctx, &CreateReminderInput{
		Title:         "Evening review",
		Message:       "Go over today's flashcards",
		ScheduledTime: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.False(t, created.IsSent)

	sent, err := svc.MarkSent(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, sent.IsSent)

	listed, err := svc.ListReminders(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.DeleteReminder(ctx, created.ID))
	listed, err = svc.ListReminders(ctx)
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestCreateReminder_Validation(t *testing.T) {
	svc, _, userID := newReminderService(t)
	ctx := ctxForUser(userID)

	_, err := svc.CreateReminder(ctx, &CreateReminderInput{ScheduledTime: time.Now()})
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)

	_, err = svc.CreateReminder(ctx, &CreateReminderInput{
		Title:         "Recurring",
		ScheduledTime: time.Now(),
		IsRecurring:   true,
	})
	apiErr, ok = apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)
}

func TestReminder_OwnershipEnforced(t *testing.T) {
	svc, _, userID := newReminderService(t)
	created, err := svc.CreateReminder(ctxForUser(userID), &CreateReminderInput{
		Title:         "Mine",
		ScheduledTime: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	err = svc.DeleteReminder(ctxForUser(uuid.New()), created.ID)
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 404, apiErr.Status)

	_, err = svc.GetReminder(ctxForUser(uuid.New()), created.ID)
	apiErr, ok = apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 404, apiErr.Status)
}

func TestGetAndUpdateReminder(t *testing.T) {
	svc, _, userID := newReminderService(t)
	ctx := ctxForUser(userID)

	created, err := svc.CreateReminder(ctx, &CreateReminderInput{
		Title:         "Before",
		Message:       "old message",
		ScheduledTime: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	got, err := svc.GetReminder(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Before", got.Title)

	newTitle := "After"
	newTime := time.Now().Add(3 * time.Hour)
	updated, err := svc.UpdateReminder(ctx, created.ID, &UpdateReminderInput{
		Title:         &newTitle,
		ScheduledTime: &newTime,
	})
	require.NoError(t, err)
	require.Equal(t, "After", updated.Title)
	require.Equal(t, "old message", updated.Message)
	require.WithinDuration(t, newTime, updated.ScheduledTime, time.Second)

	// Flipping a reminder to recurring without a pattern is rejected.
	recurring := true
	_, err = svc.UpdateReminder(ctx, created.ID, &UpdateReminderInput{IsRecurring: &recurring})
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)
}

func TestUpcomingReminders_WindowAndOrder(t *testing.T) {
	svc, _, userID := newReminderService(t)
	ctx := ctxForUser(userID)

	soon, err := svc.CreateReminder(ctx, &CreateReminderInput{
		Title:         "Soon",
		ScheduledTime: time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)
	later, err := svc.CreateReminder(ctx, &CreateReminderInput{
		Title:         "Later",
		ScheduledTime: time.Now().Add(10 * time.Hour),
	})
	require.NoError(t, err)
	// Outside the 24h window.
	_, err = svc.CreateReminder(ctx, &CreateReminderInput{
		Title:         "Far away",
		ScheduledTime: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	// Already sent reminders are excluded.
	sentReminder, err := svc.CreateReminder(ctx, &CreateReminderInput{
		Title:         "Sent",
		ScheduledTime: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.MarkSent(ctx, sentReminder.ID)
	require.NoError(t, err)

	upcoming, err := svc.Upcoming(ctx, 24)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	require.Equal(t, soon.ID, upcoming[0].ID)
	require.Equal(t, later.ID, upcoming[1].ID)
	require.NotEmpty(t, upcoming[0].TimeUntil)
}

func TestCreateStudySessionReminder(t *testing.T) {
	svc, _, userID := newReminderService(t)
	ctx := ctxForUser(userID)

	start := time.Now().Add(time.Hour)
	reminder, err := svc.CreateStudySessionReminder(ctx, "Algebra drill", 45, start)
	require.NoError(t, err)
	require.Equal(t, "Study Session: Algebra drill", reminder.Title)
	require.Contains(t, reminder.Message, "45-minute")
	require.Contains(t, reminder.Message, "starts in 10 minutes")
	require.Equal(t, types.ReminderTypeStudySession, reminder.ReminderType)
	require.WithinDuration(t, start.Add(-10*time.Minute), reminder.ScheduledTime, time.Second)

	// A start time in the past is rejected.
	_, err = svc.CreateStudySessionReminder(ctx, "Too late", 30, time.Now().Add(-time.Minute))
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)
}

func TestCreateBreakReminder(t *testing.T) {
	svc, _, userID := newReminderService(t)
	ctx := ctxForUser(userID)

	reminder, err := svc.CreateBreakReminder(ctx, 50)
	require.NoError(t, err)
	require.Equal(t, "Take a Break!", reminder.Title)
	require.Contains(t, reminder.Message, "studying for 50 minutes")
	require.Equal(t, types.ReminderTypeBreak, reminder.ReminderType)
	require.WithinDuration(t, time.Now().Add(50*time.Minute), reminder.ScheduledTime, 5*time.Second)

	_, err = svc.CreateBreakReminder(ctx, 0)
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)
}

func TestSmartRecommendations(t *testing.T) {
	svc, gdb, userID := newReminderService(t)
	ctx := ctxForUser(userID)

	// No progress yet: nothing to recommend.
	created, err := svc.SmartRecommendations(ctx)
	require.NoError(t, err)
	require.Empty(t, created)

	now := time.Now()
	// Recent work on Math, plus a Spanish record that has gone stale.
	seedProgressRecord(t, gdb, userID, "Math", now.Add(-2*time.Hour))
	seedProgressRecord(t, gdb, userID, "Math", now.Add(-26*time.Hour))
	seedProgressRecord(t, gdb, userID, "Spanish", now.Add(-5*24*time.Hour))

	created, err = svc.SmartRecommendations(ctx)
	require.NoError(t, err)
	require.Len(t, created, 2)

	daily := created[0]
	require.Equal(t, "Daily Study Time", daily.Title)
	require.True(t, daily.IsRecurring)
	require.Equal(t, "daily", daily.RecurrencePattern)
	require.True(t, daily.ScheduledTime.After(now))

	review := created[1]
	require.Equal(t, "Review Spanish", review.Title)
	require.Equal(t, types.ReminderTypeCustom, review.ReminderType)
	require.WithinDuration(t, now.Add(2*time.Hour), review.ScheduledTime, 5*time.Second)
}

func TestMarkSent_RecurringRollsOver(t *testing.T) {
	svc, _, userID := newReminderService(t)
	ctx := ctxForUser(userID)

	scheduled := time.Now().Add(time.Hour)
	created, err := svc.CreateReminder(ctx, &CreateReminderInput{
		Title:             "Weekly recap",
		ScheduledTime:     scheduled,
		IsRecurring:       true,
		RecurrencePattern: "weekly",
	})
	require.NoError(t, err)

	_, err = svc.MarkSent(ctx, created.ID)
	require.NoError(t, err)

	listed, err := svc.ListReminders(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	var next *types.Reminder
	for _, r := range listed {
		if !r.IsSent {
			next = r
		}
	}
	require.NotNil(t, next)
	require.Equal(t, "Weekly recap", next.Title)
	require.WithinDuration(t, scheduled.AddDate(0, 0, 7), next.ScheduledTime, time.Second)
}
