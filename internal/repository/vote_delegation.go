package repository

import (
	"context"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
)

type VoteDelegationRepository interface {
	Create(ctx context.Context, delegation *entity.VoteDelegation) error
	Delete(ctx context.Context, delegatorID, delegateID, daoID string) error
	CountIncoming(ctx context.Context, userID, daoID string) (int64, error)
	CountOutgoing(ctx context.Context, userID, daoID string) (int64, error)
}

type voteDelegationRepository struct{}

func NewVoteDelegationRepository() *voteDelegationRepository {
	return &voteDelegationRepository{}
}

func (r *voteDelegationRepository) Create(ctx context.Context, delegation *entity.VoteDelegation) error {
	return xcontext.DB(ctx).Create(delegation).Error
}

func (r *voteDelegationRepository) Delete(ctx context.Context, delegatorID, delegateID, daoID string) error {
	return xcontext.DB(ctx).
		Where("delegator_id=? AND delegate_id=? AND dao_id=?", delegatorID, delegateID, daoID).
		Delete(&entity.VoteDelegation{}).Error
}

func (r *voteDelegationRepository) CountIncoming(ctx context.Context, userID, daoID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.VoteDelegation{}).
		Where("delegate_id=? AND dao_id=?", userID, daoID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *voteDelegationRepository) CountOutgoing(ctx context.Context, userID, daoID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.VoteDelegation{}).
		Where("delegator_id=? AND dao_id=?", userID, daoID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
