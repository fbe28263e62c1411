package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mtaadao/backend/config"
	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/pkg/logger"
	"github.com/mtaadao/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "test",
		ApiServer: config.ServerConfigs{
			DefaultLimit: 50,
			MaxLimit:     500,
		},
		Kafka: config.KafkaConfigs{
			RefreshTopic: "metrics.refreshed",
		},
		Analytics: config.AnalyticsConfigs{
			EngagementWindow:   30 * 24 * time.Hour,
			RefreshInterval:    30 * time.Second,
			RetentionFallback:  0.85,
			RunwayUnbounded:    999,
			VotingPowerWeight:  1,
			TopDaoLimit:        5,
			ActiveDaoLimit:     20,
			RecentActivitySize: 50,
		},
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.ERROR))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}
