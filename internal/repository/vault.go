package repository

import (
	"context"
	"database/sql"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type VaultAggregate struct {
	Balance     float64
	Count       int64
	LastUpdated sql.NullTime
}

type VaultRepository interface {
	Upsert(ctx context.Context, vault *entity.Vault) error
	Aggregate(ctx context.Context, daoID string) (*VaultAggregate, error)
}

type vaultRepository struct{}

func NewVaultRepository() *vaultRepository {
	return &vaultRepository{}
}

func (r *vaultRepository) Upsert(ctx context.Context, vault *entity.Vault) error {
	return xcontext.DB(ctx).Model(vault).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "dao_id"},
			{Name: "name"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"balance": vault.Balance,
		}),
	}).Create(vault).Error
}

func (r *vaultRepository) Aggregate(ctx context.Context, daoID string) (*VaultAggregate, error) {
	var result VaultAggregate
	err := xcontext.DB(ctx).Model(&entity.Vault{}).
		Select("COALESCE(SUM(balance), 0) as balance, COUNT(*) as count, MAX(updated_at) as last_updated").
		Where("dao_id=?", daoID).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
