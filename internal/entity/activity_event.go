package entity

import (
	"time"

	"github.com/mtaadao/backend/pkg/enum"
)

type ActivityType string

var (
	ActivityContribution = enum.New(ActivityType("contribution"))
	ActivityVote         = enum.New(ActivityType("vote"))
	ActivityProposal     = enum.New(ActivityType("proposal"))
	ActivityOther        = enum.New(ActivityType("other"))
)

// ActivityEvent is the append-only activity log. Rows are immutable once
// written; they are the sole signal for classifying a member as active.
// Ids are snowflakes so concurrent appends never contend on id generation.
type ActivityEvent struct {
	ID        int64     `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	DaoID string `gorm:"index"`
	DAO   DAO    `gorm:"foreignKey:DaoID"`

	Type     ActivityType
	Metadata Map `gorm:"type:text"`
}
