package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studywise/studywise-backend/internal/logger"
	"github.com/studywise/studywise-backend/internal/types"
)

type CounselingSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.CounselingSession) ([]*types.CounselingSession, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) (*types.CounselingSession, error)
	LatestByProfession(ctx context.Context, tx *gorm.DB, userID uuid.UUID, targetProfession string) (*types.CounselingSession, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CounselingSession, error)
	Update(ctx context.Context, tx *gorm.DB, session *types.CounselingSession) error
}

type counselingSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCounselingSessionRepo(db *gorm.DB, baseLog *logger.Logger) CounselingSessionRepo {
	return &counselingSessionRepo{db: db, log: baseLog.With("repo", "CounselingSessionRepo")}
}

func (csr *counselingSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.CounselingSession) ([]*types.CounselingSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	if len(sessions) == 0 {
		return []*types.CounselingSession{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (csr *counselingSessionRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) (*types.CounselingSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	var result types.CounselingSession
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (csr *counselingSessionRepo) LatestByProfession(ctx context.Context, tx *gorm.DB, userID uuid.UUID, targetProfession string) (*types.CounselingSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	var result types.CounselingSession
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND target_profession = ?", userID, targetProfession).
		Order("created_at DESC").
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (csr *counselingSessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CounselingSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	var results []*types.CounselingSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (csr *counselingSessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.CounselingSession) error {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	return transaction.WithContext(ctx).Save(session).Error
}
