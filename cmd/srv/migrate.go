package main

import (
	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())

	if err := entity.MigrateTable(s.ctx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Migration completed")
	return nil
}
