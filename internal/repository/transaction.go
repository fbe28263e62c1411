package repository

import (
	"context"
	"time"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type StatisticTransactionFilter struct {
	DaoID        string
	Types        []entity.TransactionType
	CreatedStart time.Time
	CreatedEnd   time.Time
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetList(ctx context.Context, daoID string, limit int) ([]entity.Transaction, error)
	Count(ctx context.Context, daoID string) (int64, error)
	SumAmount(ctx context.Context, filter StatisticTransactionFilter) (float64, error)
}

type transactionRepository struct{}

func NewTransactionRepository() *transactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return xcontext.DB(ctx).Create(transaction).Error
}

func (r *transactionRepository) GetList(
	ctx context.Context, daoID string, limit int,
) ([]entity.Transaction, error) {
	var result []entity.Transaction
	err := xcontext.DB(ctx).
		Where("dao_id=?", daoID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *transactionRepository) Count(ctx context.Context, daoID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Transaction{}).
		Where("dao_id=?", daoID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *transactionRepository) SumAmount(
	ctx context.Context, filter StatisticTransactionFilter,
) (float64, error) {
	var result float64
	err := r.applyFilter(ctx, filter).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *transactionRepository) applyFilter(
	ctx context.Context, filter StatisticTransactionFilter,
) *gorm.DB {
	tx := xcontext.DB(ctx).Model(&entity.Transaction{})

	if filter.DaoID != "" {
		tx = tx.Where("dao_id=?", filter.DaoID)
	}

	if len(filter.Types) != 0 {
		tx = tx.Where("type IN ?", filter.Types)
	}

	if !filter.CreatedStart.IsZero() {
		tx = tx.Where("created_at >= ?", filter.CreatedStart)
	}

	if !filter.CreatedEnd.IsZero() {
		tx = tx.Where("created_at <= ?", filter.CreatedEnd)
	}

	return tx
}
