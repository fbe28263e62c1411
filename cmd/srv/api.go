package main

import (
	"net/http"

	"github.com/mtaadao/backend/internal/middleware"
	"github.com/mtaadao/backend/pkg/prometheus"
	"github.com/mtaadao/backend/pkg/router"
	"github.com/mtaadao/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadSnowFlake()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	go s.startMetricsServer()

	s.server = &http.Server{
		Addr:    xcontext.Configs(s.ctx).ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	xcontext.Logger(s.ctx).Infof("Api server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.AllowCors())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Analytics API
	router.GET(s.router, "/getAnalytics", s.analyticsDomain.GetRealTimeMetrics)
	router.GET(s.router, "/getHistoricalAnalytics", s.analyticsDomain.GetHistoricalData)
	router.GET(s.router, "/getBenchmarks", s.analyticsDomain.GetPerformanceBenchmarks)
	router.GET(s.router, "/exportAnalytics", s.analyticsDomain.ExportCSV)
	router.GET(s.router, "/getRecentActivity", s.analyticsDomain.GetRecentActivity)
	router.POST(s.router, "/trackActivity", s.analyticsDomain.TrackActivity)

	// Treasury API
	router.GET(s.router, "/getTreasuryBalance", s.treasuryDomain.GetBalance)
	router.GET(s.router, "/getTreasuryTransactions", s.treasuryDomain.GetTransactions)
	router.GET(s.router, "/getTreasuryMetrics", s.treasuryDomain.GetMetrics)

	// Governance API
	router.GET(s.router, "/getProposals", s.governanceDomain.GetProposals)
	router.GET(s.router, "/getProposal", s.governanceDomain.GetProposal)
	router.GET(s.router, "/getVotingPower", s.governanceDomain.GetVotingPower)

	// Community API
	router.GET(s.router, "/getMemberCount", s.communityDomain.GetMemberCount)
	router.GET(s.router, "/getMemberStats", s.communityDomain.GetMemberStats)
	router.GET(s.router, "/getEngagementMetrics", s.communityDomain.GetEngagementMetrics)

	// Intent dispatcher API
	router.POST(s.router, "/kwetu", s.kwetuDomain.Execute)
}

func (s *srv) startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.NewHandler())

	addr := xcontext.Configs(s.ctx).MetricsServer.Address()
	xcontext.Logger(s.ctx).Infof("Starting metrics server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		xcontext.Logger(s.ctx).Errorf("Metrics server stopped: %v", err)
	}
}
