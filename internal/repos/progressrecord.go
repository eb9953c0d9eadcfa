package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studywise/studywise-backend/internal/logger"
	"github.com/studywise/studywise-backend/internal/types"
)

type ProgressRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.ProgressRecord) ([]*types.ProgressRecord, error)
	ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, subject string) ([]*types.ProgressRecord, error)
	ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ProgressRecord, error)
}

type progressRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRecordRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRecordRepo {
	return &progressRecordRepo{db: db, log: baseLog.With("repo", "ProgressRecordRepo")}
}

func (prr *progressRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.ProgressRecord) ([]*types.ProgressRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}
	if len(records) == 0 {
		return []*types.ProgressRecord{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (prr *progressRecordRepo) ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, subject string) ([]*types.ProgressRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}
	var results []*types.ProgressRecord
	query := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since)
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if err := query.Order("date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (prr *progressRecordRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ProgressRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}
	var results []*types.ProgressRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
