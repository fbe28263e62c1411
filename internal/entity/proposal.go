package entity

import "github.com/mtaadao/backend/pkg/enum"

type ProposalStatusType string

var (
	ProposalPending  = enum.New(ProposalStatusType("pending"))
	ProposalActive   = enum.New(ProposalStatusType("active"))
	ProposalExecuted = enum.New(ProposalStatusType("executed"))
	ProposalRejected = enum.New(ProposalStatusType("rejected"))
	ProposalExpired  = enum.New(ProposalStatusType("expired"))
)

// Proposal status transitions are owned by the governance subsystem; the
// metrics core only reads counts per status.
type Proposal struct {
	Base
	DaoID string `gorm:"index"`
	DAO   DAO    `gorm:"foreignKey:DaoID"`

	ProposerID string
	Proposer   User `gorm:"foreignKey:ProposerID"`

	Title       string
	Description []byte `gorm:"type:longtext"`
	Status      ProposalStatusType
}
