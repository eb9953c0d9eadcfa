package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/studywise/studywise-backend/internal/apierr"
	"github.com/studywise/studywise-backend/internal/logger"
	"github.com/studywise/studywise-backend/internal/repos"
	"github.com/studywise/studywise-backend/internal/requestdata"
	"github.com/studywise/studywise-backend/internal/types"
)

type CreateProgressRecordInput struct {
	Subject           string   `json:"subject"`
	Topic             string   `json:"topic"`
	TimeSpent         int      `json:"time_spent"`
	SessionsCompleted int      `json:"sessions_completed"`
	AccuracyScore     *float64 `json:"accuracy_score"`
	DifficultyLevel   string   `json:"difficulty_level"`
}

type SubjectTime struct {
	Subject   string `json:"subject"`
	TimeSpent int    `json:"time_spent"`
	Sessions  int    `json:"sessions"`
}

type WeeklyProgress struct {
	WeekStart     string `json:"week_start"`
	TotalTime     int    `json:"total_time"`
	TotalSessions int    `json:"total_sessions"`
	SubjectsCount int    `json:"subjects_count"`
}

type LearningTrends struct {
	MostStudiedSubjects  []SubjectTime `json:"most_studied_subjects"`
	StudyConsistency     float64       `json:"study_consistency"`
	AverageSessionLength float64       `json:"average_session_length"`
	TotalSubjects        int           `json:"total_subjects"`
}

type ProgressSummary struct {
	TotalStudyTime  int              `json:"total_study_time"`
	TotalSessions   int              `json:"total_sessions"`
	SubjectsStudied int              `json:"subjects_studied"`
	AverageAccuracy float64          `json:"average_accuracy"`
	CurrentStreak   int              `json:"current_streak"`
	WeeklyProgress  []WeeklyProgress `json:"weekly_progress"`
	LearningTrends  LearningTrends   `json:"learning_trends"`
}

type DailyTime struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

type AccuracyPoint struct {
	Date     string  `json:"date"`
	Accuracy float64 `json:"accuracy"`
}

type ProgressAnalytics struct {
	DailyTime           []DailyTime     `json:"daily_time"`
	SubjectDistribution []SubjectTime   `json:"subject_distribution"`
	AccuracyTrends      []AccuracyPoint `json:"accuracy_trends"`
	Period              string          `json:"period"`
}

type ProgressService interface {
	CreateRecord(ctx context.Context, input *CreateProgressRecordInput) (*types.ProgressRecord, error)
	ListRecords(ctx context.Context, days int, subject string) ([]*types.ProgressRecord, error)
	Summary(ctx context.Context, days int) (*ProgressSummary, error)
	Analytics(ctx context.Context, period string) (*ProgressAnalytics, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.ProgressRecordRepo
}

func NewProgressService(db *gorm.DB, log *logger.Logger, progressRepo repos.ProgressRecordRepo) ProgressService {
	return &progressService{
		db:           db,
		log:          log.With("service", "ProgressService"),
		progressRepo: progressRepo,
	}
}

func (ps *progressService) CreateRecord(ctx context.Context, input *CreateProgressRecordInput) (*types.ProgressRecord, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	if strings.TrimSpace(input.Subject) == "" {
		return nil, apierr.Validation("subject is required")
	}
	if input.TimeSpent < 0 {
		return nil, apierr.Validation("time_spent cannot be negative")
	}
	sessions := input.SessionsCompleted
	if sessions <= 0 {
		sessions = 1
	}

	now := time.Now()
	patterns, _ := json.Marshal(map[string]string{"recorded_at": now.Format(time.RFC3339)})
	recommendations, _ := json.Marshal(map[string]string{"type": "basic"})
	record := &types.ProgressRecord{
		ID:                uuid.New(),
		UserID:            rd.UserID,
		Date:              now,
		Subject:           strings.TrimSpace(input.Subject),
		Topic:             strings.TrimSpace(input.Topic),
		TimeSpent:         input.TimeSpent,
		SessionsCompleted: sessions,
		AccuracyScore:     input.AccuracyScore,
		DifficultyLevel:   input.DifficultyLevel,
		LearningPatterns:  datatypes.JSON(patterns),
		Recommendations:   datatypes.JSON(recommendations),
	}
	if _, err := ps.progressRepo.Create(ctx, nil, []*types.ProgressRecord{record}); err != nil {
		return nil, fmt.Errorf("failed to create progress record: %w", err)
	}
	return record, nil
}

func (ps *progressService) ListRecords(ctx context.Context, days int, subject string) ([]*types.ProgressRecord, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	records, err := ps.progressRepo.ListSince(ctx, nil, rd.UserID, since, strings.TrimSpace(subject))
	if err != nil {
		return nil, fmt.Errorf("failed to list progress records: %w", err)
	}
	return records, nil
}

func (ps *progressService) Summary(ctx context.Context, days int) (*ProgressSummary, error) {
	records, err := ps.ListRecords(ctx, days, "")
	if err != nil {
		return nil, err
	}
	summary := &ProgressSummary{
		WeeklyProgress: []WeeklyProgress{},
		LearningTrends: LearningTrends{MostStudiedSubjects: []SubjectTime{}},
	}
	if len(records) == 0 {
		return summary, nil
	}

	subjects := map[string]bool{}
	var accuracySum float64
	for _, r := range records {
		summary.TotalStudyTime += r.TimeSpent
		summary.TotalSessions += r.SessionsCompleted
		subjects[r.Subject] = true
		if r.AccuracyScore != nil {
			accuracySum += *r.AccuracyScore
		}
	}
	summary.SubjectsStudied = len(subjects)
	summary.AverageAccuracy = accuracySum / float64(len(records))
	summary.CurrentStreak = studyStreak(records, time.Now())
	summary.WeeklyProgress = weeklyProgress(records)
	summary.LearningTrends = learningTrends(records, days)
	return summary, nil
}

func (ps *progressService) Analytics(ctx context.Context, period string) (*ProgressAnalytics, error) {
	days := periodDays(period)
	records, err := ps.ListRecords(ctx, days, "")
	if err != nil {
		return nil, err
	}

	dailyMinutes := map[string]int{}
	bySubject := map[string]*SubjectTime{}
	dailyAccuracySum := map[string]float64{}
	dailyAccuracyCount := map[string]int{}
	for _, r := range records {
		day := r.Date.Format("2006-01-02")
		dailyMinutes[day] += r.TimeSpent
		st, ok := bySubject[r.Subject]
		if !ok {
			st = &SubjectTime{Subject: r.Subject}
			bySubject[r.Subject] = st
		}
		st.TimeSpent += r.TimeSpent
		st.Sessions += r.SessionsCompleted
		if r.AccuracyScore != nil {
			dailyAccuracySum[day] += *r.AccuracyScore
			dailyAccuracyCount[day]++
		}
	}

	analytics := &ProgressAnalytics{
		DailyTime:           make([]DailyTime, 0, len(dailyMinutes)),
		SubjectDistribution: make([]SubjectTime, 0, len(bySubject)),
		AccuracyTrends:      make([]AccuracyPoint, 0, len(dailyAccuracySum)),
		Period:              period,
	}
	for day, minutes := range dailyMinutes {
		analytics.DailyTime = append(analytics.DailyTime, DailyTime{Date: day, Minutes: minutes})
	}
	sort.Slice(analytics.DailyTime, func(i, j int) bool {
		return analytics.DailyTime[i].Date < analytics.DailyTime[j].Date
	})
	for _, st := range bySubject {
		analytics.SubjectDistribution = append(analytics.SubjectDistribution, *st)
	}
	sort.Slice(analytics.SubjectDistribution, func(i, j int) bool {
		return analytics.SubjectDistribution[i].TimeSpent > analytics.SubjectDistribution[j].TimeSpent
	})
	for day, sum := range dailyAccuracySum {
		analytics.AccuracyTrends = append(analytics.AccuracyTrends, AccuracyPoint{
			Date:     day,
			Accuracy: sum / float64(dailyAccuracyCount[day]),
		})
	}
	sort.Slice(analytics.AccuracyTrends, func(i, j int) bool {
		return analytics.AccuracyTrends[i].Date < analytics.AccuracyTrends[j].Date
	})
	return analytics, nil
}

func periodDays(period string) int {
	switch period {
	case "week":
		return 7
	case "month":
		return 30
	case "year":
		return 365
	default:
		return 30
	}
}

// studyStreak counts consecutive days with at least one record, walking back
// from today. A streak that ended yesterday still counts as current.
func studyStreak(records []*types.ProgressRecord, now time.Time) int {
	days := map[string]bool{}
	for _, r := range records {
		days[r.Date.Format("2006-01-02")] = true
	}
	cursor := now
	if !days[cursor.Format("2006-01-02")] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	streak := 0
	for days[cursor.Format("2006-01-02")] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// weekStart returns the Monday of the record's week, date only.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, -offset)
}

func weeklyProgress(records []*types.ProgressRecord) []WeeklyProgress {
	type bucket struct {
		time     int
		sessions int
		subjects map[string]bool
	}
	byWeek := map[string]*bucket{}
	for _, r := range records {
		key := weekStart(r.Date).Format("2006-01-02")
		b, ok := byWeek[key]
		if !ok {
			b = &bucket{subjects: map[string]bool{}}
			byWeek[key] = b
		}
		b.time += r.TimeSpent
		b.sessions += r.SessionsCompleted
		b.subjects[r.Subject] = true
	}
	weeks := make([]WeeklyProgress, 0, len(byWeek))
	for key, b := range byWeek {
		weeks = append(weeks, WeeklyProgress{
			WeekStart:     key,
			TotalTime:     b.time,
			TotalSessions: b.sessions,
			SubjectsCount: len(b.subjects),
		})
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].WeekStart < weeks[j].WeekStart })
	return weeks
}

func learningTrends(records []*types.ProgressRecord, days int) LearningTrends {
	bySubject := map[string]*SubjectTime{}
	studyDays := map[string]bool{}
	totalTime := 0
	totalSessions := 0
	for _, r := range records {
		st, ok := bySubject[r.Subject]
		if !ok {
			st = &SubjectTime{Subject: r.Subject}
			bySubject[r.Subject] = st
		}
		st.TimeSpent += r.TimeSpent
		st.Sessions += r.SessionsCompleted
		studyDays[r.Date.Format("2006-01-02")] = true
		totalTime += r.TimeSpent
		totalSessions += r.SessionsCompleted
	}

	top := make([]SubjectTime, 0, len(bySubject))
	for _, st := range bySubject {
		top = append(top, *st)
	}
	sort.Slice(top, func(i, j int) bool { return top[i].TimeSpent > top[j].TimeSpent })
	if len(top) > 3 {
		top = top[:3]
	}

	trends := LearningTrends{
		MostStudiedSubjects: top,
		TotalSubjects:       len(bySubject),
	}
	if days > 0 {
		trends.StudyConsistency = math.Round(float64(len(studyDays))/float64(days)*1000) / 10
	}
	if totalSessions > 0 {
		trends.AverageSessionLength = float64(totalTime) / float64(totalSessions)
	}
	return trends
}
