package repository

import (
	"context"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
)

type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	Get(ctx context.Context, userID, daoID string) (*entity.Member, error)
	Count(ctx context.Context, daoID string) (int64, error)
}

type memberRepository struct{}

func NewMemberRepository() *memberRepository {
	return &memberRepository{}
}

func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	return xcontext.DB(ctx).Create(member).Error
}

func (r *memberRepository) Get(ctx context.Context, userID, daoID string) (*entity.Member, error) {
	var result entity.Member
	err := xcontext.DB(ctx).Where("user_id=? AND dao_id=?", userID, daoID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *memberRepository) Count(ctx context.Context, daoID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Member{}).
		Where("dao_id=?", daoID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
