package entity

type Vault struct {
	Base
	DaoID string `gorm:"index:idx_vault_dao_name,unique"`
	DAO   DAO    `gorm:"foreignKey:DaoID"`

	Name     string `gorm:"index:idx_vault_dao_name,unique"`
	Balance  float64
	Currency string
}
