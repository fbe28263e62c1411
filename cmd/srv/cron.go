package main

import (
	"github.com/mtaadao/backend/internal/domain/cron"
	"github.com/mtaadao/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadSnowFlake()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewRefreshMetricsCronJob(
		s.ctx, s.analyticsDomain, s.daoRepo, s.publisher))
	cronJobManager.Start(s.ctx)

	return nil
}
