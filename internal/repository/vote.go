package repository

import (
	"context"
	"time"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
)

type StatisticVoteFilter struct {
	DaoID        string
	UserID       string
	CreatedStart time.Time
	CreatedEnd   time.Time
}

type VoteTypeCount struct {
	Type  entity.VoteType
	Count int64
}

type VoteRepository interface {
	Create(ctx context.Context, vote *entity.Vote) error
	CountByType(ctx context.Context, proposalID string) ([]VoteTypeCount, error)
	Count(ctx context.Context, filter StatisticVoteFilter) (int64, error)
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Create(ctx context.Context, vote *entity.Vote) error {
	return xcontext.DB(ctx).Create(vote).Error
}

func (r *voteRepository) CountByType(ctx context.Context, proposalID string) ([]VoteTypeCount, error) {
	var result []VoteTypeCount
	err := xcontext.DB(ctx).Model(&entity.Vote{}).
		Select("type, COUNT(*) as count").
		Where("proposal_id=?", proposalID).
		Group("type").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *voteRepository) Count(ctx context.Context, filter StatisticVoteFilter) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Vote{})

	if filter.DaoID != "" {
		tx = tx.Where("dao_id=?", filter.DaoID)
	}

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if !filter.CreatedStart.IsZero() {
		tx = tx.Where("created_at >= ?", filter.CreatedStart)
	}

	if !filter.CreatedEnd.IsZero() {
		tx = tx.Where("created_at <= ?", filter.CreatedEnd)
	}

	var result int64
	if err := tx.Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}
