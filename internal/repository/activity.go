package repository

import (
	"context"
	"time"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type StatisticActivityFilter struct {
	UserID       string
	DaoID        string
	Type         entity.ActivityType
	CreatedStart time.Time
	CreatedEnd   time.Time
}

type ActivityRepository interface {
	Create(ctx context.Context, event *entity.ActivityEvent) error
	Count(ctx context.Context, filter StatisticActivityFilter) (int64, error)
	DistinctUserIDs(ctx context.Context, daoID string, start, end time.Time) ([]string, error)
	GetRecentByUser(ctx context.Context, userID string, limit int) ([]entity.ActivityEvent, error)
}

type activityRepository struct{}

func NewActivityRepository() *activityRepository {
	return &activityRepository{}
}

func (r *activityRepository) Create(ctx context.Context, event *entity.ActivityEvent) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *activityRepository) Count(ctx context.Context, filter StatisticActivityFilter) (int64, error) {
	var result int64
	if err := r.applyFilter(ctx, filter).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

// DistinctUserIDs scopes to one DAO when daoID is non-empty, otherwise it
// spans the whole platform.
func (r *activityRepository) DistinctUserIDs(
	ctx context.Context, daoID string, start, end time.Time,
) ([]string, error) {
	tx := xcontext.DB(ctx).Model(&entity.ActivityEvent{}).
		Distinct("user_id").
		Where("created_at >= ? AND created_at <= ?", start, end)

	if daoID != "" {
		tx = tx.Where("dao_id=?", daoID)
	}

	var result []string
	if err := tx.Pluck("user_id", &result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activityRepository) GetRecentByUser(
	ctx context.Context, userID string, limit int,
) ([]entity.ActivityEvent, error) {
	var result []entity.ActivityEvent
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activityRepository) applyFilter(ctx context.Context, filter StatisticActivityFilter) *gorm.DB {
	tx := xcontext.DB(ctx).Model(&entity.ActivityEvent{})

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.DaoID != "" {
		tx = tx.Where("dao_id=?", filter.DaoID)
	}

	if filter.Type != "" {
		tx = tx.Where("type=?", filter.Type)
	}

	if !filter.CreatedStart.IsZero() {
		tx = tx.Where("created_at >= ?", filter.CreatedStart)
	}

	if !filter.CreatedEnd.IsZero() {
		tx = tx.Where("created_at <= ?", filter.CreatedEnd)
	}

	return tx
}
