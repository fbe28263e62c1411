package entity

import (
	"database/sql"

	"github.com/mtaadao/backend/pkg/enum"
)

type TransactionType string

var (
	TransactionDeposit      = enum.New(TransactionType("deposit"))
	TransactionContribution = enum.New(TransactionType("contribution"))
	TransactionWithdrawal   = enum.New(TransactionType("withdrawal"))
	TransactionDisbursement = enum.New(TransactionType("disbursement"))
)

// InflowTransactionTypes and OutflowTransactionTypes classify treasury
// movements for burn-rate computation.
var (
	InflowTransactionTypes  = []TransactionType{TransactionDeposit, TransactionContribution}
	OutflowTransactionTypes = []TransactionType{TransactionWithdrawal, TransactionDisbursement}
)

type Transaction struct {
	Base
	DaoID string `gorm:"index"`
	DAO   DAO    `gorm:"foreignKey:DaoID"`

	UserID sql.NullString
	User   User `gorm:"foreignKey:UserID"`

	Type     TransactionType
	Amount   float64
	Currency string
	Note     string
}
