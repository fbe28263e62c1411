package domain

import (
	"errors"
	"testing"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/model"
	"github.com/mtaadao/backend/pkg/errorx"
	"github.com/mtaadao/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newKwetuDomainForTest() *kwetuDomain {
	return NewKwetuDomain(
		newTreasuryDomainForTest(),
		newGovernanceDomainForTest(),
		newCommunityDomainForTest(),
	)
}

func Test_kwetuDomain_Execute_routesToTreasury(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	testutil.SampleVault(ctx, &entity.Vault{DaoID: dao.ID, Balance: 700})

	domain := newKwetuDomainForTest()
	resp, err := domain.Execute(ctx, &model.KwetuRequest{
		Service: "treasury",
		Method:  "getBalance",
		Params:  map[string]any{"dao_id": dao.ID},
	})
	require.NoError(t, err)

	balance, ok := resp.Data.(*model.GetTreasuryBalanceResponse)
	require.True(t, ok)
	require.Equal(t, float64(700), balance.Balance)
}

func Test_kwetuDomain_Execute_routesToGovernance(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	proposal := testutil.SampleProposal(ctx, &entity.Proposal{DaoID: dao.ID})
	testutil.SampleVote(ctx, &entity.Vote{ProposalID: proposal.ID, DaoID: dao.ID})

	domain := newKwetuDomainForTest()
	resp, err := domain.Execute(ctx, &model.KwetuRequest{
		Service: "governance",
		Method:  "getProposalById",
		Params:  map[string]any{"proposal_id": proposal.ID},
	})
	require.NoError(t, err)

	tally, ok := resp.Data.(*model.GetProposalResponse)
	require.True(t, ok)
	require.Equal(t, int64(1), tally.TotalVotes)
}

func Test_kwetuDomain_Execute_routesToCommunity(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	testutil.SampleMember(ctx, &entity.Member{DaoID: dao.ID})

	domain := newKwetuDomainForTest()
	resp, err := domain.Execute(ctx, &model.KwetuRequest{
		Service: "community",
		Method:  "getMemberCount",
		Params:  map[string]any{"dao_id": dao.ID},
	})
	require.NoError(t, err)

	count, ok := resp.Data.(*model.GetMemberCountResponse)
	require.True(t, ok)
	require.Equal(t, int64(1), count.Total)
}

func Test_kwetuDomain_Execute_unknownService(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newKwetuDomainForTest()
	_, err := domain.Execute(ctx, &model.KwetuRequest{
		Service: "lottery",
		Method:  "draw",
	})
	require.Error(t, err)

	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	require.Equal(t, errorx.UnknownOperation, errx.Code)
}

func Test_kwetuDomain_Execute_unknownMethod(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newKwetuDomainForTest()
	_, err := domain.Execute(ctx, &model.KwetuRequest{
		Service: "treasury",
		Method:  "burnItAll",
	})
	require.Error(t, err)

	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	require.Equal(t, errorx.UnknownOperation, errx.Code)
}

func Test_kwetuDomain_Execute_failFastOnMissingEntity(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newKwetuDomainForTest()
	_, err := domain.Execute(ctx, &model.KwetuRequest{
		Service: "governance",
		Method:  "getProposalById",
		Params:  map[string]any{"proposal_id": "missing"},
	})
	require.Error(t, err)

	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	require.Equal(t, errorx.NotFound, errx.Code)
}
