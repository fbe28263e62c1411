package entity

import (
	"time"

	"github.com/mtaadao/backend/pkg/enum"
	"gorm.io/gorm"
)

type MemberRoleType string

var (
	MemberRoleOwner     = enum.New(MemberRoleType("owner"))
	MemberRoleModerator = enum.New(MemberRoleType("moderator"))
	MemberRoleMember    = enum.New(MemberRoleType("member"))
)

// Member is the user<->DAO membership row. CreatedAt doubles as the joined-at
// timestamp reported by member stats.
type Member struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	DaoID string `gorm:"primaryKey"`
	DAO   DAO    `gorm:"foreignKey:DaoID"`

	Role MemberRoleType
}
