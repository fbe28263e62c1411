package entity

import (
	"time"

	"gorm.io/gorm"
)

// VoteDelegation redirects a delegator's voting power to a delegate within
// one DAO. The store does not enforce one delegate per delegator, so voting
// power sums delegation rows instead of assuming single-delegate cardinality.
type VoteDelegation struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	DelegatorID string `gorm:"primaryKey"`
	Delegator   User   `gorm:"foreignKey:DelegatorID"`

	DelegateID string `gorm:"primaryKey"`
	Delegate   User   `gorm:"foreignKey:DelegateID"`

	DaoID string `gorm:"primaryKey"`
	DAO   DAO    `gorm:"foreignKey:DaoID"`
}
