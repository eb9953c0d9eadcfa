package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studywise/studywise-backend/internal/logger"
	"github.com/studywise/studywise-backend/internal/types"
)

type ReminderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reminders []*types.Reminder) ([]*types.Reminder, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Reminder, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, reminderID, userID uuid.UUID) (*types.Reminder, error)
	Update(ctx context.Context, tx *gorm.DB, reminder *types.Reminder) error
	Delete(ctx context.Context, tx *gorm.DB, reminderID, userID uuid.UUID) error
	ListUnsentBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Reminder, error)
}

type reminderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReminderRepo(db *gorm.DB, baseLog *logger.Logger) ReminderRepo {
	return &reminderRepo{db: db, log: baseLog.With("repo", "ReminderRepo")}
}

func (rr *reminderRepo) Create(ctx context.Context, tx *gorm.DB, reminders []*types.Reminder) ([]*types.Reminder, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(reminders) == 0 {
		return []*types.Reminder{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (rr *reminderRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Reminder, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Reminder
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_time ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reminderRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, reminderID, userID uuid.UUID) (*types.Reminder, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Reminder
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", reminderID, userID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (rr *reminderRepo) Update(ctx context.Context, tx *gorm.DB, reminder *types.Reminder) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Save(reminder).Error
}

func (rr *reminderRepo) Delete(ctx context.Context, tx *gorm.DB, reminderID, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", reminderID, userID).
		Delete(&types.Reminder{}).Error
}

func (rr *reminderRepo) ListUnsentBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Reminder, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Reminder
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_sent = ? AND scheduled_time > ? AND scheduled_time <= ?", userID, false, from, to).
		Order("scheduled_time ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
