package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/model"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/errorx"
	"github.com/mtaadao/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newCommunityDomainForTest() *communityDomain {
	return NewCommunityDomain(
		repository.NewMemberRepository(),
		repository.NewUserRepository(),
		repository.NewProposalRepository(),
		repository.NewVoteRepository(),
		repository.NewActivityRepository(),
	)
}

func Test_communityDomain_GetMemberCount(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	testutil.SampleMember(ctx, &entity.Member{DaoID: dao.ID})
	testutil.SampleMember(ctx, &entity.Member{DaoID: dao.ID})

	domain := newCommunityDomainForTest()
	resp, err := domain.GetMemberCount(ctx, &model.GetMemberCountRequest{DaoID: dao.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Total)
}

func Test_communityDomain_GetMemberStats_notFound(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	user := testutil.SampleUser(ctx, nil)

	domain := newCommunityDomainForTest()
	_, err := domain.GetMemberStats(ctx, &model.GetMemberStatsRequest{
		UserID: user.ID,
		DaoID:  dao.ID,
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.NotFound, "Not found member"), err)
}

func Test_communityDomain_GetMemberStats_zeroActivity(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	user := testutil.SampleUser(ctx, nil)

	// A member with no activity at all is still a member: zero stats, not an
	// error.
	testutil.SampleMember(ctx, &entity.Member{UserID: user.ID, DaoID: dao.ID})

	domain := newCommunityDomainForTest()
	resp, err := domain.GetMemberStats(ctx, &model.GetMemberStatsRequest{
		UserID: user.ID,
		DaoID:  dao.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.ContributionScore)
	require.Equal(t, int64(0), resp.ProposalsSubmitted)
	require.Equal(t, int64(0), resp.VotesParticipated)
	require.False(t, resp.JoinedAt.IsZero())
	require.Equal(t, user.ID, resp.User.ID)
}

func Test_communityDomain_GetMemberStats(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	user := testutil.SampleUser(ctx, nil)
	testutil.SampleMember(ctx, &entity.Member{UserID: user.ID, DaoID: dao.ID})

	testutil.SampleActivity(ctx, &entity.ActivityEvent{
		UserID: user.ID, DaoID: dao.ID, Type: entity.ActivityContribution,
	})
	testutil.SampleActivity(ctx, &entity.ActivityEvent{
		UserID: user.ID, DaoID: dao.ID, Type: entity.ActivityContribution,
	})

	proposal := testutil.SampleProposal(ctx, &entity.Proposal{DaoID: dao.ID, ProposerID: user.ID})
	testutil.SampleVote(ctx, &entity.Vote{ProposalID: proposal.ID, DaoID: dao.ID, UserID: user.ID})

	domain := newCommunityDomainForTest()
	resp, err := domain.GetMemberStats(ctx, &model.GetMemberStatsRequest{
		UserID: user.ID,
		DaoID:  dao.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.ContributionScore)
	require.Equal(t, int64(1), resp.ProposalsSubmitted)
	require.Equal(t, int64(1), resp.VotesParticipated)
}

func Test_communityDomain_GetEngagementMetrics(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)

	users := make([]entity.User, 0, 10)
	for i := 0; i < 10; i++ {
		user := testutil.SampleUser(ctx, &entity.User{Name: fmt.Sprintf("member-%d", i)})
		testutil.SampleMember(ctx, &entity.Member{UserID: user.ID, DaoID: dao.ID})
		users = append(users, user)
	}

	// Three members active in the current window; the prior window had three
	// active members, two of whom are active again.
	for _, user := range users[:3] {
		testutil.SampleActivity(ctx, &entity.ActivityEvent{
			UserID:    user.ID,
			DaoID:     dao.ID,
			CreatedAt: time.Now().Add(-24 * time.Hour),
		})
	}

	for _, user := range []entity.User{users[0], users[1], users[3]} {
		testutil.SampleActivity(ctx, &entity.ActivityEvent{
			UserID:    user.ID,
			DaoID:     dao.ID,
			CreatedAt: time.Now().Add(-45 * 24 * time.Hour),
		})
	}

	domain := newCommunityDomainForTest()
	resp, err := domain.GetEngagementMetrics(ctx, &model.GetEngagementMetricsRequest{DaoID: dao.ID})
	require.NoError(t, err)
	require.Equal(t, int64(10), resp.TotalMembers)
	require.Equal(t, int64(3), resp.ActiveMembers)
	require.InDelta(t, 0.3, resp.ActiveRate, 0.001)
	require.InDelta(t, 2.0/3.0, resp.RetentionRate, 0.001)
	require.Equal(t, resp.ActiveRate, resp.EngagementScore)
}

func Test_communityDomain_GetEngagementMetrics_retentionFallback(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	user := testutil.SampleUser(ctx, nil)
	testutil.SampleMember(ctx, &entity.Member{UserID: user.ID, DaoID: dao.ID})

	// Activity only in the current window: the prior window is empty, so the
	// retention rate must be exactly the fallback, not 0 or 1.
	testutil.SampleActivity(ctx, &entity.ActivityEvent{
		UserID:    user.ID,
		DaoID:     dao.ID,
		CreatedAt: time.Now().Add(-time.Hour),
	})

	domain := newCommunityDomainForTest()
	resp, err := domain.GetEngagementMetrics(ctx, &model.GetEngagementMetricsRequest{DaoID: dao.ID})
	require.NoError(t, err)
	require.Equal(t, 0.85, resp.RetentionRate)
}

func Test_communityDomain_GetEngagementMetrics_noMembers(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)

	domain := newCommunityDomainForTest()
	resp, err := domain.GetEngagementMetrics(ctx, &model.GetEngagementMetricsRequest{DaoID: dao.ID})
	require.NoError(t, err)
	require.Equal(t, float64(0), resp.ActiveRate)
	require.Equal(t, int64(0), resp.TotalMembers)
}
