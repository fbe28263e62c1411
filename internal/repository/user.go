package repository

import (
	"context"
	"time"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedBefore(ctx context.Context, t time.Time) (int64, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *userRepository) CountCreatedBefore(ctx context.Context, t time.Time) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Where("created_at <= ?", t).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
