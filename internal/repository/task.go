package repository

import (
	"context"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
)

type StatisticTaskFilter struct {
	DaoID  string
	Status entity.TaskStatusType
}

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	Count(ctx context.Context, filter StatisticTaskFilter) (int64, error)
}

type taskRepository struct{}

func NewTaskRepository() *taskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	return xcontext.DB(ctx).Create(task).Error
}

func (r *taskRepository) Count(ctx context.Context, filter StatisticTaskFilter) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Task{})

	if filter.DaoID != "" {
		tx = tx.Where("dao_id=?", filter.DaoID)
	}

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	var result int64
	if err := tx.Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}
