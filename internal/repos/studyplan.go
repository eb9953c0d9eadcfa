package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studywise/studywise-backend/internal/logger"
	"github.com/studywise/studywise-backend/internal/types"
)

type StudyPlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plans []*types.StudyPlan) ([]*types.StudyPlan, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, planID, userID uuid.UUID) (*types.StudyPlan, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activeOnly bool) ([]*types.StudyPlan, error)
	Update(ctx context.Context, tx *gorm.DB, plan *types.StudyPlan) error
	Deactivate(ctx context.Context, tx *gorm.DB, planID, userID uuid.UUID) error
}

type studyPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudyPlanRepo(db *gorm.DB, baseLog *logger.Logger) StudyPlanRepo {
	return &studyPlanRepo{db: db, log: baseLog.With("repo", "StudyPlanRepo")}
}

func (spr *studyPlanRepo) Create(ctx context.Context, tx *gorm.DB, plans []*types.StudyPlan) ([]*types.StudyPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = spr.db
	}
	if len(plans) == 0 {
		return []*types.StudyPlan{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (spr *studyPlanRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, planID, userID uuid.UUID) (*types.StudyPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = spr.db
	}
	var result types.StudyPlan
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (spr *studyPlanRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activeOnly bool) ([]*types.StudyPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = spr.db
	}
	var results []*types.StudyPlan
	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (spr *studyPlanRepo) Update(ctx context.Context, tx *gorm.DB, plan *types.StudyPlan) error {
	transaction := tx
	if transaction == nil {
		transaction = spr.db
	}
	return transaction.WithContext(ctx).Save(plan).Error
}

func (spr *studyPlanRepo) Deactivate(ctx context.Context, tx *gorm.DB, planID, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = spr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.StudyPlan{}).
		Where("id = ? AND user_id = ?", planID, userID).
		Update("is_active", false).Error
}
