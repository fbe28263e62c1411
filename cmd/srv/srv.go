package main

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/mtaadao/backend/internal/domain"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/kafka"
	"github.com/mtaadao/backend/pkg/logger"
	"github.com/mtaadao/backend/pkg/pubsub"
	"github.com/mtaadao/backend/pkg/router"
	"github.com/mtaadao/backend/pkg/xcontext"
	"github.com/mtaadao/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo        repository.UserRepository
	daoRepo         repository.DAORepository
	memberRepo      repository.MemberRepository
	proposalRepo    repository.ProposalRepository
	voteRepo        repository.VoteRepository
	delegationRepo  repository.VoteDelegationRepository
	vaultRepo       repository.VaultRepository
	transactionRepo repository.TransactionRepository
	activityRepo    repository.ActivityRepository
	taskRepo        repository.TaskRepository

	treasuryDomain   domain.TreasuryDomain
	governanceDomain domain.GovernanceDomain
	communityDomain  domain.CommunityDomain
	analyticsDomain  domain.AnalyticsDomain
	kwetuDomain      domain.KwetuDomain

	redisClient xredis.Client
	publisher   pubsub.Publisher

	router *router.Router
	server *http.Server
}

func (s *srv) loadApp() {
	s.ctx = context.Background()

	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "MtaaDAO"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Used to start the background analytics refresh sweep.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Category:    "Database",
			Description: `Used to create or update database tables.`,
		},
	}

	s.app = app
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       xcontext.Configs(s.ctx).Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	var err error
	s.publisher, err = kafka.NewPublisher(
		"mtaadao-backend",
		[]string{xcontext.Configs(s.ctx).Kafka.Addr},
	)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.daoRepo = repository.NewDAORepository()
	s.memberRepo = repository.NewMemberRepository()
	s.proposalRepo = repository.NewProposalRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.delegationRepo = repository.NewVoteDelegationRepository()
	s.vaultRepo = repository.NewVaultRepository()
	s.transactionRepo = repository.NewTransactionRepository()
	s.activityRepo = repository.NewActivityRepository()
	s.taskRepo = repository.NewTaskRepository()
}

func (s *srv) loadDomains() {
	s.treasuryDomain = domain.NewTreasuryDomain(s.daoRepo, s.vaultRepo, s.transactionRepo)
	s.governanceDomain = domain.NewGovernanceDomain(
		s.proposalRepo, s.voteRepo, s.delegationRepo, s.activityRepo)
	s.communityDomain = domain.NewCommunityDomain(
		s.memberRepo, s.userRepo, s.proposalRepo, s.voteRepo, s.activityRepo)
	s.analyticsDomain = domain.NewAnalyticsDomain(
		s.daoRepo, s.userRepo, s.memberRepo, s.proposalRepo, s.voteRepo, s.taskRepo,
		s.transactionRepo, s.vaultRepo, s.activityRepo, s.redisClient)
	s.kwetuDomain = domain.NewKwetuDomain(s.treasuryDomain, s.governanceDomain, s.communityDomain)
}
