package entity

import "github.com/mtaadao/backend/pkg/enum"

type VoteType string

var (
	VoteFor     = enum.New(VoteType("for"))
	VoteAgainst = enum.New(VoteType("against"))
	VoteAbstain = enum.New(VoteType("abstain"))
)

// Vote is immutable once cast. DaoID is denormalized from the proposal so
// per-DAO vote counts do not need a join.
type Vote struct {
	Base
	ProposalID string   `gorm:"index"`
	Proposal   Proposal `gorm:"foreignKey:ProposalID"`

	DaoID string `gorm:"index"`
	DAO   DAO    `gorm:"foreignKey:DaoID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Type VoteType
}
