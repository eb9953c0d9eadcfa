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

func newProgressService(t *testing.T) (ProgressService, *gorm.DB, uuid.UUID) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	user := newTestUser(t, gdb)
	return NewProgressService(gdb, log, repos.NewProgressRecordRepo(gdb, log)), gdb, user.ID
}

func seedRecord(t *testing.T, gdb *gorm.DB, userID uuid.UUID, subject string, date time.Time, minutes int, accuracy *float64) {
	t.Helper()
	require.NoError(t, gdb.Create(&types.ProgressRecord{
		ID:                uuid.New(),
		UserID:            userID,
		Date:              date,
		Subject:           subject,
		Topic:             "seeded",
		TimeSpent:         minutes,
		SessionsCompleted: 1,
		AccuracyScore:     accuracy,
	}).Error)
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateProgressRecord(t *testing.T) {
	svc, _, userID := newProgressService(t)
	ctx := ctxForUser(userID)

	record, err := svc.CreateRecord(ctx, &CreateProgressRecordInput{
		Subject:         "  Math  ",
		Topic:           "Fractions",
		TimeSpent:       40,
		AccuracyScore:   floatPtr(0.85),
		DifficultyLevel: "beginner",
	})
	require.NoError(t, err)
	require.Equal(t, "Math", record.Subject)
	require.Equal(t, 1, record.SessionsCompleted)
	require.NotEmpty(t, record.LearningPatterns)
	require.NotEmpty(t, record.Recommendations)

	_, err = svc.CreateRecord(ctx, &CreateProgressRecordInput{TimeSpent: 10})
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)
}

func TestListProgressRecords_FilterAndWindow(t *testing.T) {
	svc, gdb, userID := newProgressService(t)
	ctx := ctxForUser(userID)
	now := time.Now()

	seedRecord(t, gdb, userID, "Math", now.Add(-time.Hour), 30, nil)
	seedRecord(t, gdb, userID, "Spanish", now.Add(-2*time.Hour), 20, nil)
	seedRecord(t, gdb, userID, "Math", now.AddDate(0, 0, -40), 60, nil)

	records, err := svc.ListRecords(ctx, 30, "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first.
	require.Equal(t, "Math", records[0].Subject)

	records, err = svc.ListRecords(ctx, 30, "Spanish")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Spanish", records[0].Subject)

	// Other users' records never leak.
	records, err = svc.ListRecords(ctxForUser(uuid.New()), 30, "")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestProgressSummary(t *testing.T) {
	svc, gdb, userID := newProgressService(t)
	ctx := ctxForUser(userID)
	now := time.Now()

	seedRecord(t, gdb, userID, "Math", now.Add(-time.Minute), 60, floatPtr(0.9))
	seedRecord(t, gdb, userID, "Math", now.AddDate(0, 0, -1), 30, floatPtr(0.7))
	seedRecord(t, gdb, userID, "Spanish", now.AddDate(0, 0, -1), 30, nil)

	summary, err := svc.Summary(ctx, 30)
	require.NoError(t, err)
	require.Equal(t, 120, summary.TotalStudyTime)
	require.Equal(t, 3, summary.TotalSessions)
	require.Equal(t, 2, summary.SubjectsStudied)
	require.InDelta(t, (0.9+0.7)/3, summary.AverageAccuracy, 0.0001)
	require.Equal(t, 2, summary.CurrentStreak)
	require.NotEmpty(t, summary.WeeklyProgress)
	require.Equal(t, 2, summary.LearningTrends.TotalSubjects)
	require.Equal(t, "Math", summary.LearningTrends.MostStudiedSubjects[0].Subject)
	require.InDelta(t, 40.0, summary.LearningTrends.AverageSessionLength, 0.0001)
}

func TestProgressSummary_NoRecords(t *testing.T) {
	svc, _, userID := newProgressService(t)
	summary, err := svc.Summary(ctxForUser(userID), 30)
	require.NoError(t, err)
	require.Zero(t, summary.TotalStudyTime)
	require.Zero(t, summary.CurrentStreak)
	require.Empty(t, summary.WeeklyProgress)
	require.Empty(t, summary.LearningTrends.MostStudiedSubjects)
}

func TestStudyStreak(t *testing.T) {
	now := time.Now()
	mk := func(offsets ...int) []*types.ProgressRecord {
		var records []*types.ProgressRecord
		for _, d := range offsets {
			records = append(records, &types.ProgressRecord{Date: now.AddDate(0, 0, d)})
		}
		return records
	}

	// Today, yesterday, then a gap.
	require.Equal(t, 2, studyStreak(mk(0, -1, -3), now))
	// A streak that ended yesterday still counts.
	require.Equal(t, 3, studyStreak(mk(-1, -2, -3), now))
	// A gap before yesterday means no current streak.
	require.Equal(t, 0, studyStreak(mk(-2, -3), now))
	require.Equal(t, 0, studyStreak(nil, now))
}

func TestWeeklyProgressGrouping(t *testing.T) {
	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	records := []*types.ProgressRecord{
		{Date: monday, Subject: "Math", TimeSpent: 30, SessionsCompleted: 1},
		{Date: monday.AddDate(0, 0, 2), Subject: "Spanish", TimeSpent: 20, SessionsCompleted: 1},
		{Date: monday.AddDate(0, 0, -3), Subject: "Math", TimeSpent: 45, SessionsCompleted: 2},
	}

	weeks := weeklyProgress(records)
	require.Len(t, weeks, 2)
	// Sorted oldest week first.
	require.Equal(t, "2026-08-17", weeks[0].WeekStart)
	require.Equal(t, 45, weeks[0].TotalTime)
	require.Equal(t, 2, weeks[0].TotalSessions)
	require.Equal(t, 1, weeks[0].SubjectsCount)
	require.Equal(t, "2026-08-24", weeks[1].WeekStart)
	require.Equal(t, 50, weeks[1].TotalTime)
	require.Equal(t, 2, weeks[1].SubjectsCount)
}

func TestLearningTrends(t *testing.T) {
	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	records := []*types.ProgressRecord{
		{Date: day, Subject: "Math", TimeSpent: 60, SessionsCompleted: 1},
		{Date: day.AddDate(0, 0, -1), Subject: "Spanish", TimeSpent: 40, SessionsCompleted: 2},
		{Date: day.AddDate(0, 0, -2), Subject: "History", TimeSpent: 20, SessionsCompleted: 1},
		{Date: day.AddDate(0, 0, -3), Subject: "Chemistry", TimeSpent: 10, SessionsCompleted: 1},
	}

	trends := learningTrends(records, 10)
	require.Len(t, trends.MostStudiedSubjects, 3)
	require.Equal(t, "Math", trends.MostStudiedSubjects[0].Subject)
	require.Equal(t, "Spanish", trends.MostStudiedSubjects[1].Subject)
	require.Equal(t, 4, trends.TotalSubjects)
	// 4 distinct study days over a 10-day window.
	require.InDelta(t, 40.0, trends.StudyConsistency, 0.0001)
	require.InDelta(t, 26.0, trends.AverageSessionLength, 0.0001)
}

func TestProgressAnalytics(t *testing.T) {
	svc, gdb, userID := newProgressService(t)
	ctx := ctxForUser(userID)
	now := time.Now()

	seedRecord(t, gdb, userID, "Math", now.Add(-time.Minute), 30, floatPtr(0.8))
	seedRecord(t, gdb, userID, "Math", now.Add(-2*time.Minute), 15, nil)
	seedRecord(t, gdb, userID, "Spanish", now.AddDate(0, 0, -2), 50, floatPtr(0.6))
	// Outside the week window.
	seedRecord(t, gdb, userID, "History", now.AddDate(0, 0, -10), 90, nil)

	analytics, err := svc.Analytics(ctx, "week")
	require.NoError(t, err)
	require.Equal(t, "week", analytics.Period)
	require.Len(t, analytics.DailyTime, 2)
	require.Equal(t, now.Format("2006-01-02"), analytics.DailyTime[1].Date)
	require.Equal(t, 45, analytics.DailyTime[1].Minutes)

	// Ordered by time spent, History excluded by the period.
	require.Len(t, analytics.SubjectDistribution, 2)
	require.Equal(t, "Spanish", analytics.SubjectDistribution[0].Subject)
	require.Equal(t, 50, analytics.SubjectDistribution[0].TimeSpent)

	// Only days with accuracy scores appear in the trend.
	require.Len(t, analytics.AccuracyTrends, 2)
	require.InDelta(t, 0.6, analytics.AccuracyTrends[0].Accuracy, 0.0001)
	require.InDelta(t, 0.8, analytics.AccuracyTrends[1].Accuracy, 0.0001)
}
