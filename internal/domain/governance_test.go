package domain

import (
	"testing"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/model"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/errorx"
	"github.com/mtaadao/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newGovernanceDomainForTest() *governanceDomain {
	return NewGovernanceDomain(
		repository.NewProposalRepository(),
		repository.NewVoteRepository(),
		repository.NewVoteDelegationRepository(),
		repository.NewActivityRepository(),
	)
}

func Test_governanceDomain_GetProposals(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	testutil.SampleProposal(ctx, &entity.Proposal{DaoID: dao.ID, Status: entity.ProposalActive})
	testutil.SampleProposal(ctx, &entity.Proposal{DaoID: dao.ID, Status: entity.ProposalExecuted})
	testutil.SampleProposal(ctx, &entity.Proposal{DaoID: dao.ID, Status: entity.ProposalExecuted})

	domain := newGovernanceDomainForTest()
	resp, err := domain.GetProposals(ctx, &model.GetProposalsRequest{DaoID: dao.ID})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.Total)
	require.Len(t, resp.Proposals, 3)

	resp, err = domain.GetProposals(ctx, &model.GetProposalsRequest{
		DaoID:  dao.ID,
		Status: "executed",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Proposals, 2)
}

func Test_governanceDomain_GetProposals_invalidStatus(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)

	domain := newGovernanceDomainForTest()
	_, err := domain.GetProposals(ctx, &model.GetProposalsRequest{
		DaoID:  dao.ID,
		Status: "approved",
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid proposal status approved"), err)
}

func Test_governanceDomain_GetProposal_tally(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	proposal := testutil.SampleProposal(ctx, &entity.Proposal{DaoID: dao.ID})

	for i := 0; i < 5; i++ {
		testutil.SampleVote(ctx, &entity.Vote{
			ProposalID: proposal.ID, DaoID: dao.ID, Type: entity.VoteFor,
		})
	}
	for i := 0; i < 2; i++ {
		testutil.SampleVote(ctx, &entity.Vote{
			ProposalID: proposal.ID, DaoID: dao.ID, Type: entity.VoteAgainst,
		})
	}
	testutil.SampleVote(ctx, &entity.Vote{
		ProposalID: proposal.ID, DaoID: dao.ID, Type: entity.VoteAbstain,
	})

	domain := newGovernanceDomainForTest()
	resp, err := domain.GetProposal(ctx, &model.GetProposalRequest{ProposalID: proposal.ID})
	require.NoError(t, err)
	require.Equal(t, int64(5), resp.VotesFor)
	require.Equal(t, int64(2), resp.VotesAgainst)
	require.Equal(t, int64(1), resp.VotesAbstain)
	require.Equal(t, int64(8), resp.TotalVotes)
	require.Equal(t, resp.VotesFor+resp.VotesAgainst+resp.VotesAbstain, resp.TotalVotes)
}

func Test_governanceDomain_GetProposal_notFound(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newGovernanceDomainForTest()
	_, err := domain.GetProposal(ctx, &model.GetProposalRequest{ProposalID: "invalid-proposal"})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.NotFound, "Not found proposal"), err)
}

func Test_governanceDomain_GetVotingPower_inactiveUser(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	user := testutil.SampleUser(ctx, nil)

	domain := newGovernanceDomainForTest()
	resp, err := domain.GetVotingPower(ctx, &model.GetVotingPowerRequest{
		UserID: user.ID,
		DaoID:  dao.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.Power)
	require.Equal(t, int64(0), resp.Delegated)
	require.Equal(t, int64(0), resp.Total)
}

func Test_governanceDomain_GetVotingPower_delegationMonotonicity(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	user := testutil.SampleUser(ctx, nil)
	delegator := testutil.SampleUser(ctx, nil)

	for i := 0; i < 3; i++ {
		testutil.SampleActivity(ctx, &entity.ActivityEvent{
			UserID: user.ID,
			DaoID:  dao.ID,
			Type:   entity.ActivityContribution,
		})
	}

	domain := newGovernanceDomainForTest()
	req := &model.GetVotingPowerRequest{UserID: user.ID, DaoID: dao.ID}

	before, err := domain.GetVotingPower(ctx, req)
	require.NoError(t, err)
	require.Equal(t, int64(3), before.Power)
	require.Equal(t, int64(3), before.Total)

	testutil.SampleDelegation(ctx, &entity.VoteDelegation{
		DelegatorID: delegator.ID,
		DelegateID:  user.ID,
		DaoID:       dao.ID,
	})

	after, err := domain.GetVotingPower(ctx, req)
	require.NoError(t, err)
	require.Equal(t, before.Total+1, after.Total)

	err = repository.NewVoteDelegationRepository().Delete(ctx, delegator.ID, user.ID, dao.ID)
	require.NoError(t, err)

	restored, err := domain.GetVotingPower(ctx, req)
	require.NoError(t, err)
	require.Equal(t, before.Total, restored.Total)
}

func Test_governanceDomain_GetVotingPower_multipleDelegationsSummed(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	user := testutil.SampleUser(ctx, nil)

	// The store does not enforce one delegate per delegator, so several
	// incoming rows must sum instead of failing.
	for i := 0; i < 3; i++ {
		delegator := testutil.SampleUser(ctx, nil)
		testutil.SampleDelegation(ctx, &entity.VoteDelegation{
			DelegatorID: delegator.ID,
			DelegateID:  user.ID,
			DaoID:       dao.ID,
		})
	}

	domain := newGovernanceDomainForTest()
	resp, err := domain.GetVotingPower(ctx, &model.GetVotingPowerRequest{
		UserID: user.ID,
		DaoID:  dao.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.Delegated)
	require.Equal(t, int64(3), resp.Total)
}
