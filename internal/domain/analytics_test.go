package domain

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mtaadao/backend/internal/common"
	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/model"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/testutil"
	"github.com/mtaadao/backend/pkg/xcontext"
	"github.com/mtaadao/backend/pkg/xredis"
	"github.com/stretchr/testify/require"
)

func newAnalyticsDomainForTest(redisClient xredis.Client) *analyticsDomain {
	return NewAnalyticsDomain(
		repository.NewDAORepository(),
		repository.NewUserRepository(),
		repository.NewMemberRepository(),
		repository.NewProposalRepository(),
		repository.NewVoteRepository(),
		repository.NewTaskRepository(),
		repository.NewTransactionRepository(),
		repository.NewVaultRepository(),
		repository.NewActivityRepository(),
		redisClient,
	)
}

func Test_analyticsDomain_GetRealTimeMetrics(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	testutil.SampleUser(ctx, nil)
	testutil.SampleProposal(ctx, &entity.Proposal{DaoID: dao.ID, Status: entity.ProposalExecuted})
	testutil.SampleProposal(ctx, &entity.Proposal{DaoID: dao.ID, Status: entity.ProposalRejected})
	testutil.SampleTask(ctx, &entity.Task{DaoID: dao.ID})
	testutil.SampleTransaction(ctx, &entity.Transaction{DaoID: dao.ID, Amount: 300})

	domain := newAnalyticsDomainForTest(&testutil.MockRedisClient{})
	resp, err := domain.GetRealTimeMetrics(ctx, &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Metrics.TotalDaos)
	require.Equal(t, int64(2), resp.Metrics.TotalProposals)
	require.Equal(t, int64(1), resp.Metrics.TotalTasks)
	require.Equal(t, float64(300), resp.Metrics.TotalTransactionVolume)
	require.InDelta(t, 50, resp.Metrics.AvgProposalSuccessRate, 0.001)
	require.Len(t, resp.Metrics.TopPerformingDaos, 1)
	require.Equal(t, dao.ID, resp.Metrics.TopPerformingDaos[0].ID)
	require.False(t, resp.Metrics.ComputedAt.IsZero())
}

func Test_analyticsDomain_GetRealTimeMetrics_servesWarmCache(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.SampleDAO(ctx, nil)

	domain := newAnalyticsDomainForTest(&testutil.MockRedisClient{})
	first, err := domain.GetRealTimeMetrics(ctx, &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Metrics.TotalDaos)

	// The cache is last-write-wins with no TTL: a second request must not see
	// new data until the next refresh.
	testutil.SampleDAO(ctx, nil)

	warm, err := domain.GetRealTimeMetrics(ctx, &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), warm.Metrics.TotalDaos)

	_, err = domain.RefreshSnapshot(ctx, "")
	require.NoError(t, err)

	refreshed, err := domain.GetRealTimeMetrics(ctx, &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), refreshed.Metrics.TotalDaos)
}

func Test_analyticsDomain_GetRealTimeMetrics_avgSuccessRateZeroProposals(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.SampleDAO(ctx, nil)

	domain := newAnalyticsDomainForTest(&testutil.MockRedisClient{})
	resp, err := domain.GetRealTimeMetrics(ctx, &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, float64(0), resp.Metrics.AvgProposalSuccessRate)
}

func Test_analyticsDomain_GetHistoricalData_week(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.SampleDAO(ctx, &entity.DAO{
		Base: entity.Base{CreatedAt: time.Now().AddDate(0, 0, -10)},
	})
	testutil.SampleUser(ctx, &entity.User{
		Base: entity.Base{CreatedAt: time.Now().AddDate(0, 0, -10)},
	})
	testutil.SampleUser(ctx, &entity.User{
		Base: entity.Base{CreatedAt: time.Now().AddDate(0, 0, -3)},
	})

	domain := newAnalyticsDomainForTest(&testutil.MockRedisClient{})
	resp, err := domain.GetHistoricalData(ctx, &model.GetHistoricalAnalyticsRequest{Period: "week"})
	require.NoError(t, err)

	// A 7-day span with day buckets, inclusive of both boundaries.
	require.Len(t, resp.Data, 8)

	for i, point := range resp.Data {
		require.GreaterOrEqual(t, point.DaoCount, int64(0))
		require.GreaterOrEqual(t, point.UserCount, int64(0))
		require.GreaterOrEqual(t, point.ProposalCount, int64(0))

		if i > 0 {
			require.GreaterOrEqual(t, point.DaoCount, resp.Data[i-1].DaoCount)
			require.GreaterOrEqual(t, point.UserCount, resp.Data[i-1].UserCount)
		}
	}

	require.Equal(t, int64(1), resp.Data[0].UserCount)
	require.Equal(t, int64(2), resp.Data[len(resp.Data)-1].UserCount)
}

func Test_analyticsDomain_GetHistoricalData_invalidPeriod(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newAnalyticsDomainForTest(&testutil.MockRedisClient{})
	_, err := domain.GetHistoricalData(ctx, &model.GetHistoricalAnalyticsRequest{Period: "decade"})
	require.Error(t, err)
}

func Test_analyticsDomain_ExportCSV_roundTrip(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.SampleDAO(ctx, &entity.DAO{
		Base: entity.Base{CreatedAt: time.Now().AddDate(0, 0, -10)},
	})

	domain := newAnalyticsDomainForTest(&testutil.MockRedisClient{})
	resp, err := domain.ExportCSV(ctx, &model.ExportAnalyticsRequest{
		Type:   "historical",
		Period: "week",
	})
	require.NoError(t, err)
	require.Equal(t, "historical", resp.Type)

	rows, err := csv.NewReader(strings.NewReader(resp.Content)).ReadAll()
	require.NoError(t, err)

	// Header plus one row per bucket.
	require.Len(t, rows, 9)
	for _, row := range rows {
		require.Len(t, row, 6)
	}
}

func Test_analyticsDomain_ExportCSV_metrics(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.SampleDAO(ctx, nil)

	domain := newAnalyticsDomainForTest(&testutil.MockRedisClient{})
	resp, err := domain.ExportCSV(ctx, &model.ExportAnalyticsRequest{Type: "metrics"})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(resp.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, len(rows[0]), len(rows[1]))
}

func Test_analyticsDomain_ExportCSV_invalidType(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newAnalyticsDomainForTest(&testutil.MockRedisClient{})
	_, err := domain.ExportCSV(ctx, &model.ExportAnalyticsRequest{Type: "pdf"})
	require.Error(t, err)
}

func Test_analyticsDomain_TrackActivity(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	user := testutil.SampleUser(ctx, nil)

	var pushedKey string
	var pushedValues []string
	redisClient := &testutil.MockRedisClient{
		LPushFunc: func(ctx context.Context, key string, values ...string) error {
			pushedKey = key
			pushedValues = values
			return nil
		},
	}

	domain := newAnalyticsDomainForTest(redisClient)
	_, err := domain.TrackActivity(ctx, &model.TrackActivityRequest{
		UserID:   user.ID,
		DaoID:    dao.ID,
		Type:     "contribution",
		Metadata: map[string]any{"amount": 50},
	})
	require.NoError(t, err)

	count, err := repository.NewActivityRepository().Count(ctx, repository.StatisticActivityFilter{
		UserID: user.ID,
		DaoID:  dao.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	require.Equal(t, common.RedisKeyRecentActivity(user.ID), pushedKey)
	require.Len(t, pushedValues, 1)
}

func Test_analyticsDomain_TrackActivity_invalidType(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newAnalyticsDomainForTest(&testutil.MockRedisClient{})
	_, err := domain.TrackActivity(ctx, &model.TrackActivityRequest{
		UserID: "user",
		DaoID:  "dao",
		Type:   "login",
	})
	require.Error(t, err)
}

func Test_analyticsDomain_TrackActivity_swallowsWriteFailures(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	user := testutil.SampleUser(ctx, nil)

	require.NoError(t, xcontext.DB(ctx).Migrator().DropTable(&entity.ActivityEvent{}))

	redisClient := &testutil.MockRedisClient{
		LPushFunc: func(ctx context.Context, key string, values ...string) error {
			return errors.New("connection refused")
		},
	}

	// Both the durable write and the redis push fail; the caller still gets a
	// success, by policy.
	domain := newAnalyticsDomainForTest(redisClient)
	_, err := domain.TrackActivity(ctx, &model.TrackActivityRequest{
		UserID: user.ID,
		DaoID:  dao.ID,
		Type:   "vote",
	})
	require.NoError(t, err)
}

func Test_analyticsDomain_GetRecentActivity_fromRedis(t *testing.T) {
	ctx := testutil.MockContext()

	redisClient := &testutil.MockRedisClient{
		LRangeFunc: func(ctx context.Context, key string, start, stop int64) ([]string, error) {
			return []string{
				`{"id":1,"dao_id":"dao1","type":"vote","created_at":"2025-08-01T00:00:00Z"}`,
				`{"id":2,"dao_id":"dao1","type":"contribution","created_at":"2025-07-31T00:00:00Z"}`,
			}, nil
		},
	}

	domain := newAnalyticsDomainForTest(redisClient)
	resp, err := domain.GetRecentActivity(ctx, &model.GetRecentActivityRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 2)
	require.Equal(t, int64(1), resp.Activities[0].ID)
	require.Equal(t, "vote", resp.Activities[0].Type)
}

func Test_analyticsDomain_GetRecentActivity_fallsBackToStore(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	user := testutil.SampleUser(ctx, nil)
	testutil.SampleActivity(ctx, &entity.ActivityEvent{UserID: user.ID, DaoID: dao.ID})

	redisClient := &testutil.MockRedisClient{
		LRangeFunc: func(ctx context.Context, key string, start, stop int64) ([]string, error) {
			return nil, errors.New("connection refused")
		},
	}

	domain := newAnalyticsDomainForTest(redisClient)
	resp, err := domain.GetRecentActivity(ctx, &model.GetRecentActivityRequest{UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 1)
	require.Equal(t, dao.ID, resp.Activities[0].DaoID)
}

func Test_analyticsDomain_GetPerformanceBenchmarks(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	testutil.SampleProposal(ctx, &entity.Proposal{DaoID: dao.ID, Status: entity.ProposalExecuted})

	domain := newAnalyticsDomainForTest(&testutil.MockRedisClient{})
	resp, err := domain.GetPerformanceBenchmarks(ctx, &model.GetBenchmarksRequest{})
	require.NoError(t, err)
	require.Equal(t, float64(65), resp.Industry.AvgGovernanceParticipation)
	require.Equal(t, float64(72), resp.Industry.AvgProposalSuccessRate)
	require.Equal(t, float64(15), resp.Industry.AvgTreasuryGrowth)
	require.Equal(t, int64(1), resp.TopQuartile.TotalProposals)
}
