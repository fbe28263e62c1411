package repository

import (
	"context"
	"time"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListProposalFilter struct {
	DaoID  string
	Status entity.ProposalStatusType
	Offset int
	Limit  int
}

type StatisticProposalFilter struct {
	DaoID        string
	ProposerID   string
	Status       entity.ProposalStatusType
	CreatedStart time.Time
	CreatedEnd   time.Time
}

type ProposalStatusCount struct {
	Status entity.ProposalStatusType
	Count  int64
}

type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	GetByID(ctx context.Context, id string) (*entity.Proposal, error)
	GetList(ctx context.Context, filter GetListProposalFilter) ([]entity.Proposal, error)
	Count(ctx context.Context, filter StatisticProposalFilter) (int64, error)
	CountByStatus(ctx context.Context, filter StatisticProposalFilter) ([]ProposalStatusCount, error)
}

type proposalRepository struct{}

func NewProposalRepository() *proposalRepository {
	return &proposalRepository{}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *entity.Proposal) error {
	return xcontext.DB(ctx).Create(proposal).Error
}

func (r *proposalRepository) GetByID(ctx context.Context, id string) (*entity.Proposal, error) {
	var result entity.Proposal
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *proposalRepository) GetList(ctx context.Context, filter GetListProposalFilter) ([]entity.Proposal, error) {
	tx := xcontext.DB(ctx).Model(&entity.Proposal{}).
		Where("dao_id=?", filter.DaoID).
		Order("created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit)

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	var result []entity.Proposal
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *proposalRepository) Count(ctx context.Context, filter StatisticProposalFilter) (int64, error) {
	var result int64
	if err := r.applyFilter(ctx, filter).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *proposalRepository) CountByStatus(
	ctx context.Context, filter StatisticProposalFilter,
) ([]ProposalStatusCount, error) {
	var result []ProposalStatusCount
	err := r.applyFilter(ctx, filter).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *proposalRepository) applyFilter(ctx context.Context, filter StatisticProposalFilter) *gorm.DB {
	tx := xcontext.DB(ctx).Model(&entity.Proposal{})

	if filter.DaoID != "" {
		tx = tx.Where("dao_id=?", filter.DaoID)
	}

	if filter.ProposerID != "" {
		tx = tx.Where("proposer_id=?", filter.ProposerID)
	}

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if !filter.CreatedStart.IsZero() {
		tx = tx.Where("created_at >= ?", filter.CreatedStart)
	}

	if !filter.CreatedEnd.IsZero() {
		tx = tx.Where("created_at <= ?", filter.CreatedEnd)
	}

	return tx
}
