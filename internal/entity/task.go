package entity

import "github.com/mtaadao/backend/pkg/enum"

type TaskStatusType string

var (
	TaskOpen      = enum.New(TaskStatusType("open"))
	TaskClaimed   = enum.New(TaskStatusType("claimed"))
	TaskCompleted = enum.New(TaskStatusType("completed"))
)

// Task is a bounty-board item. The metrics core only counts tasks; claiming
// and payout are owned by the task subsystem.
type Task struct {
	Base
	DaoID string `gorm:"index"`
	DAO   DAO    `gorm:"foreignKey:DaoID"`

	Title        string
	Status       TaskStatusType
	BountyAmount float64
}
