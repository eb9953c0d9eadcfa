package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"
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

type CreateReminderInput struct {
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	ReminderType      string    `json:"reminder_type"`
	ScheduledTime     time.Time `json:"scheduled_time"`
	IsRecurring       bool      `json:"is_recurring"`
	RecurrencePattern string    `json:"recurrence_pattern"`
}

type UpdateReminderInput struct {
	Title             *string    `json:"title"`
	Message           *string    `json:"message"`
	ScheduledTime     *time.Time `json:"scheduled_time"`
	IsRecurring       *bool      `json:"is_recurring"`
	RecurrencePattern *string    `json:"recurrence_pattern"`
}

type UpcomingReminder struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	ScheduledTime time.Time `json:"scheduled_time"`
	TimeUntil     string    `json:"time_until"`
}

type ReminderService interface {
	CreateReminder(ctx context.Context, input *CreateReminderInput) (*types.Reminder, error)
	ListReminders(ctx context.Context) ([]*types.Reminder, error)
	GetReminder(ctx context.Context, reminderID uuid.UUID) (*types.Reminder, error)
	UpdateReminder(ctx context.Context, reminderID uuid.UUID, input *UpdateReminderInput) (*types.Reminder, error)
	Upcoming(ctx context.Context, hours int) ([]UpcomingReminder, error)
	CreateStudySessionReminder(ctx context.Context, title string, durationMinutes int, startTime time.Time) (*types.Reminder, error)
	CreateBreakReminder(ctx context.Context, studyDurationMinutes int) (*types.Reminder, error)
	SmartRecommendations(ctx context.Context) ([]*types.Reminder, error)
	MarkSent(ctx context.Context, reminderID uuid.UUID) (*types.Reminder, error)
	DeleteReminder(ctx context.Context, reminderID uuid.UUID) error
}

type reminderService struct {
	db           *gorm.DB
	log          *logger.Logger
	reminderRepo repos.ReminderRepo
	progressRepo repos.ProgressRecordRepo
}

func NewReminderService(db *gorm.DB, log *logger.Logger, reminderRepo repos.ReminderRepo, progressRepo repos.ProgressRecordRepo) ReminderService {
	return &reminderService{
		db:           db,
		log:          log.With("service", "ReminderService"),
		reminderRepo: reminderRepo,
		progressRepo: progressRepo,
	}
}

func (rs *reminderService) CreateReminder(ctx context.Context, input *CreateReminderInput) (*types.Reminder, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apierr.Validation("title is required")
	}
	if input.ScheduledTime.IsZero() {
		return nil, apierr.Validation("scheduled_time is required")
	}
	if input.IsRecurring && strings.TrimSpace(input.RecurrencePattern) == "" {
		return nil, apierr.Validation("recurrence_pattern is required for recurring reminders")
	}

	reminder := &types.Reminder{
		ID:                uuid.New(),
		UserID:            rd.UserID,
		Title:             strings.TrimSpace(input.Title),
		Message:           input.Message,
		ReminderType:      input.ReminderType,
		ScheduledTime:     input.ScheduledTime,
		IsRecurring:       input.IsRecurring,
		RecurrencePattern: input.RecurrencePattern,
	}
	if _, err := rs.reminderRepo.Create(ctx, nil, []*types.Reminder{reminder}); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}

func (rs *reminderService) ListReminders(ctx context.Context) ([]*types.Reminder, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	reminders, err := rs.reminderRepo.ListByUser(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

func (rs *reminderService) GetReminder(ctx context.Context, reminderID uuid.UUID) (*types.Reminder, error) {
	return rs.getOwned(ctx, reminderID)
}

func (rs *reminderService) UpdateReminder(ctx context.Context, reminderID uuid.UUID, input *UpdateReminderInput) (*types.Reminder, error) {
	reminder, err := rs.getOwned(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apierr.Validation("title cannot be empty")
		}
		reminder.Title = strings.TrimSpace(*input.Title)
	}
	if input.Message != nil {
		reminder.Message = *input.Message
	}
	if input.ScheduledTime != nil {
		reminder.ScheduledTime = *input.ScheduledTime
	}
	if input.IsRecurring != nil {
		reminder.IsRecurring = *input.IsRecurring
	}
	if input.RecurrencePattern != nil {
		reminder.RecurrencePattern = *input.RecurrencePattern
	}
	if reminder.IsRecurring && strings.TrimSpace(reminder.RecurrencePattern) == "" {
		return nil, apierr.Validation("recurrence_pattern is required for recurring reminders")
	}
	if err := rs.reminderRepo.Update(ctx, nil, reminder); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return reminder, nil
}

func (rs *reminderService) Upcoming(ctx context.Context, hours int) ([]UpcomingReminder, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	if hours <= 0 {
		hours = 24
	}
	now := time.Now()
	reminders, err := rs.reminderRepo.ListUnsentBetween(ctx, nil, rd.UserID, now, now.Add(time.Duration(hours)*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming reminders: %w", err)
	}
	upcoming := make([]UpcomingReminder, 0, len(reminders))
	for _, r := range reminders {
		upcoming = append(upcoming, UpcomingReminder{
			ID:            r.ID,
			Title:         r.Title,
			Message:       r.Message,
			ScheduledTime: r.ScheduledTime,
			TimeUntil:     r.ScheduledTime.Sub(now).Round(time.Minute).String(),
		})
	}
	return upcoming, nil
}

func (rs *reminderService) CreateStudySessionReminder(ctx context.Context, title string, durationMinutes int, startTime time.Time) (*types.Reminder, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apierr.Validation("title is required")
	}
	if durationMinutes <= 0 {
		return nil, apierr.Validation("duration_minutes must be a positive number of minutes")
	}
	if !startTime.After(time.Now()) {
		return nil, apierr.Validation("start_time must be in the future")
	}

	reminder := &types.Reminder{
		ID:            uuid.New(),
		UserID:        rd.UserID,
		Title:         fmt.Sprintf("Study Session: %s", title),
		Message:       fmt.Sprintf("Your %d-minute study session '%s' starts in 10 minutes!", durationMinutes, title),
		ReminderType:  types.ReminderTypeStudySession,
		ScheduledTime: startTime.Add(-10 * time.Minute),
	}
	if _, err := rs.reminderRepo.Create(ctx, nil, []*types.Reminder{reminder}); err != nil {
		return nil, fmt.Errorf("failed to create study session reminder: %w", err)
	}
	return reminder, nil
}

func (rs *reminderService) CreateBreakReminder(ctx context.Context, studyDurationMinutes int) (*types.Reminder, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	if studyDurationMinutes <= 0 {
		return nil, apierr.Validation("study_duration must be a positive number of minutes")
	}

	reminder := &types.Reminder{
		ID:            uuid.New(),
		UserID:        rd.UserID,
		Title:         "Take a Break!",
		Message:       fmt.Sprintf("You've been studying for %d minutes. Time for a 5-10 minute break!", studyDurationMinutes),
		ReminderType:  types.ReminderTypeBreak,
		ScheduledTime: time.Now().Add(time.Duration(studyDurationMinutes) * time.Minute),
	}
	if _, err := rs.reminderRepo.Create(ctx, nil, []*types.Reminder{reminder}); err != nil {
		return nil, fmt.Errorf("failed to create break reminder: %w", err)
	}
	return reminder, nil
}

// SmartRecommendations derives reminders from the user's recent progress
// records: a daily reminder at their most common study hour, plus review
// nudges for subjects untouched for more than three days.
func (rs *reminderService) SmartRecommendations(ctx context.Context) ([]*types.Reminder, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	records, err := rs.progressRepo.ListRecent(ctx, nil, rd.UserID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress records: %w", err)
	}
	if len(records) == 0 {
		return []*types.Reminder{}, nil
	}

	now := time.Now()
	created := []*types.Reminder{}

	hourCounts := map[int]int{}
	lastStudied := map[string]time.Time{}
	for _, r := range records {
		hourCounts[r.Date.Hour()]++
		if last, ok := lastStudied[r.Subject]; !ok || r.Date.After(last) {
			lastStudied[r.Subject] = r.Date
		}
	}
	bestHour, bestCount := 0, 0
	for hour, count := range hourCounts {
		if count > bestCount || (count == bestCount && hour < bestHour) {
			bestHour, bestCount = hour, count
		}
	}

	tomorrow := now.AddDate(0, 0, 1)
	created = append(created, &types.Reminder{
		ID:                uuid.New(),
		UserID:            rd.UserID,
		Title:             "Daily Study Time",
		Message:           fmt.Sprintf("This is your most productive study hour (%02d:00). Keep the habit going!", bestHour),
		ReminderType:      types.ReminderTypeCustom,
		ScheduledTime:     time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), bestHour, 0, 0, 0, now.Location()),
		IsRecurring:       true,
		RecurrencePattern: "daily",
	})

	staleSubjects := make([]string, 0, len(lastStudied))
	for subject, last := range lastStudied {
		if subject != "" && now.Sub(last) > 72*time.Hour {
			staleSubjects = append(staleSubjects, subject)
		}
	}
	sort.Strings(staleSubjects)
	for _, subject := range staleSubjects {
		created = append(created, &types.Reminder{
			ID:            uuid.New(),
			UserID:        rd.UserID,
			Title:         fmt.Sprintf("Review %s", subject),
			Message:       fmt.Sprintf("It's been a while since you studied %s. A quick review will keep it fresh.", subject),
			ReminderType:  types.ReminderTypeCustom,
			ScheduledTime: now.Add(2 * time.Hour),
		})
	}

	if _, err := rs.reminderRepo.Create(ctx, nil, created); err != nil {
		return nil, fmt.Errorf("failed to create smart reminders: %w", err)
	}
	return created, nil
}

func (rs *reminderService) MarkSent(ctx context.Context, reminderID uuid.UUID) (*types.Reminder, error) {
	reminder, err := rs.getOwned(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	reminder.IsSent = true

	txErr := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.reminderRepo.Update(ctx, tx, reminder); err != nil {
			return fmt.Errorf("failed to update reminder: %w", err)
		}
		if !reminder.IsRecurring {
			return nil
		}
		next := nextOccurrence(reminder.ScheduledTime, reminder.RecurrencePattern)
		if next.IsZero() {
			return nil
		}
		rollover := &types.Reminder{
			ID:                uuid.New(),
			UserID:            reminder.UserID,
			Title:             reminder.Title,
			Message:           reminder.Message,
			ReminderType:      reminder.ReminderType,
			ScheduledTime:     next,
			IsRecurring:       true,
			RecurrencePattern: reminder.RecurrencePattern,
		}
		if _, err := rs.reminderRepo.Create(ctx, tx, []*types.Reminder{rollover}); err != nil {
			return fmt.Errorf("failed to create next recurring reminder: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return reminder, nil
}

func (rs *reminderService) DeleteReminder(ctx context.Context, reminderID uuid.UUID) error {
	reminder, err := rs.getOwned(ctx, reminderID)
	if err != nil {
		return err
	}
	if err := rs.reminderRepo.Delete(ctx, nil, reminder.ID, reminder.UserID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

func (rs *reminderService) getOwned(ctx context.Context, reminderID uuid.UUID) (*types.Reminder, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no request data in context"))
	}
	reminder, err := rs.reminderRepo.GetByIDForUser(ctx, nil, reminderID, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminder: %w", err)
	}
	if reminder == nil {
		return nil, apierr.NotFound("reminder %s not found", reminderID)
	}
	return reminder, nil
}

func nextOccurrence(from time.Time, pattern string) time.Time {
	switch strings.ToLower(strings.TrimSpace(pattern)) {
	case "daily":
		return from.AddDate(0, 0, 1)
	case "weekly":
		return from.AddDate(0, 0, 7)
	case "monthly":
		return from.AddDate(0, 1, 0)
	default:
		return time.Time{}
	}
}
