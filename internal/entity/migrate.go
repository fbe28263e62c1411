package entity

import (
	"context"

	"github.com/mtaadao/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&DAO{},
		&Member{},
		&Proposal{},
		&Vote{},
		&VoteDelegation{},
		&Vault{},
		&Transaction{},
		&ActivityEvent{},
		&Task{},
	)
}
