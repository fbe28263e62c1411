package cron

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mtaadao/backend/internal/domain"
	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/model"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/pubsub"
	"github.com/mtaadao/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_RefreshMetricsCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, &entity.DAO{MemberCount: 10})
	testutil.SampleProposal(ctx, &entity.Proposal{DaoID: dao.ID, Status: entity.ProposalExecuted})

	analyticsDomain := domain.NewAnalyticsDomain(
		repository.NewDAORepository(),
		repository.NewUserRepository(),
		repository.NewMemberRepository(),
		repository.NewProposalRepository(),
		repository.NewVoteRepository(),
		repository.NewTaskRepository(),
		repository.NewTransactionRepository(),
		repository.NewVaultRepository(),
		repository.NewActivityRepository(),
		&testutil.MockRedisClient{},
	)

	var publishedTopic string
	var publishedPack *pubsub.Pack
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			publishedTopic = topic
			publishedPack = pack
			return nil
		},
	}

	job := NewRefreshMetricsCronJob(ctx, analyticsDomain, repository.NewDAORepository(), publisher)
	job.Do(ctx)

	require.Equal(t, "metrics.refreshed", publishedTopic)
	require.NotNil(t, publishedPack)

	var event refreshedEvent
	require.NoError(t, json.Unmarshal(publishedPack.Msg, &event))
	require.Contains(t, event.DaoIDs, "global")
	require.Contains(t, event.DaoIDs, dao.ID)
	require.False(t, event.RefreshedAt.IsZero())

	// The sweep leaves the cache warm, so reads serve the refreshed
	// snapshot.
	resp, err := analyticsDomain.GetRealTimeMetrics(ctx, &model.GetAnalyticsRequest{DaoID: dao.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Metrics.TotalProposals)
}

func Test_RefreshMetricsCronJob_schedule(t *testing.T) {
	ctx := testutil.MockContext()

	job := NewRefreshMetricsCronJob(ctx, nil, repository.NewDAORepository(), &testutil.MockPublisher{})
	require.True(t, job.RunNow())
	require.False(t, job.Next().IsZero())
}
