package entity

type DAO struct {
	Base
	Handle      string `gorm:"unique"`
	DisplayName string

	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`

	// MemberCount is denormalized by the membership subsystem; the metrics
	// core only reads it for ranking.
	MemberCount int

	// Currency is the treasury reporting currency of the DAO.
	Currency string

	Introduction []byte `gorm:"type:longtext"`
}
