package repository

import (
	"context"
	"time"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
)

type GetListDAOFilter struct {
	Offset int
	Limit  int

	// ByMemberCount orders the result by member count descending; the
	// default order is newest-first.
	ByMemberCount bool
}

type DAORepository interface {
	Create(ctx context.Context, dao *entity.DAO) error
	GetByID(ctx context.Context, id string) (*entity.DAO, error)
	GetList(ctx context.Context, filter GetListDAOFilter) ([]entity.DAO, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedBefore(ctx context.Context, t time.Time) (int64, error)
}

type daoRepository struct{}

func NewDAORepository() *daoRepository {
	return &daoRepository{}
}

func (r *daoRepository) Create(ctx context.Context, dao *entity.DAO) error {
	return xcontext.DB(ctx).Create(dao).Error
}

func (r *daoRepository) GetByID(ctx context.Context, id string) (*entity.DAO, error) {
	var result entity.DAO
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *daoRepository) GetList(ctx context.Context, filter GetListDAOFilter) ([]entity.DAO, error) {
	tx := xcontext.DB(ctx).Model(&entity.DAO{})

	if filter.ByMemberCount {
		tx = tx.Order("member_count DESC")
	} else {
		tx = tx.Order("created_at DESC")
	}

	if filter.Limit != 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var result []entity.DAO
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *daoRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.DAO{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *daoRepository) CountCreatedBefore(ctx context.Context, t time.Time) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.DAO{}).
		Where("created_at <= ?", t).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
