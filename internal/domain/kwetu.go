package domain

import (
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/mtaadao/backend/internal/model"
	"github.com/mtaadao/backend/pkg/errorx"
	"github.com/mtaadao/backend/pkg/xcontext"
)

type KwetuDomain interface {
	Execute(ctx context.Context, req *model.KwetuRequest) (*model.KwetuResponse, error)
}

// kwetuDomain routes flat {service, method, params} operations into the
// aggregators. An unknown service or method is a caller bug, never a
// transient condition, so it fails fast instead of degrading.
type kwetuDomain struct {
	treasuryDomain   TreasuryDomain
	governanceDomain GovernanceDomain
	communityDomain  CommunityDomain
}

func NewKwetuDomain(
	treasuryDomain TreasuryDomain,
	governanceDomain GovernanceDomain,
	communityDomain CommunityDomain,
) *kwetuDomain {
	return &kwetuDomain{
		treasuryDomain:   treasuryDomain,
		governanceDomain: governanceDomain,
		communityDomain:  communityDomain,
	}
}

func (d *kwetuDomain) Execute(ctx context.Context, req *model.KwetuRequest) (*model.KwetuResponse, error) {
	var data any
	var err error

	switch req.Service {
	case "treasury":
		data, err = d.executeTreasury(ctx, req)
	case "governance":
		data, err = d.executeGovernance(ctx, req)
	case "community":
		data, err = d.executeCommunity(ctx, req)
	default:
		return nil, errorx.New(errorx.UnknownOperation, "Unknown service %s", req.Service)
	}

	if err != nil {
		return nil, err
	}

	return &model.KwetuResponse{Data: data}, nil
}

func (d *kwetuDomain) executeTreasury(ctx context.Context, req *model.KwetuRequest) (any, error) {
	switch req.Method {
	case "getBalance":
		typedReq := model.GetTreasuryBalanceRequest{}
		if err := decodeParams(ctx, req.Params, &typedReq); err != nil {
			return nil, err
		}

		return d.treasuryDomain.GetBalance(ctx, &typedReq)

	case "getTransactions":
		typedReq := model.GetTreasuryTransactionsRequest{}
		if err := decodeParams(ctx, req.Params, &typedReq); err != nil {
			return nil, err
		}

		return d.treasuryDomain.GetTransactions(ctx, &typedReq)

	case "getMetrics":
		typedReq := model.GetTreasuryMetricsRequest{}
		if err := decodeParams(ctx, req.Params, &typedReq); err != nil {
			return nil, err
		}

		return d.treasuryDomain.GetMetrics(ctx, &typedReq)

	default:
		return nil, errorx.New(errorx.UnknownOperation, "Unknown method %s of treasury", req.Method)
	}
}

func (d *kwetuDomain) executeGovernance(ctx context.Context, req *model.KwetuRequest) (any, error) {
	switch req.Method {
	case "getProposals":
		typedReq := model.GetProposalsRequest{}
		if err := decodeParams(ctx, req.Params, &typedReq); err != nil {
			return nil, err
		}

		return d.governanceDomain.GetProposals(ctx, &typedReq)

	case "getProposalById":
		typedReq := model.GetProposalRequest{}
		if err := decodeParams(ctx, req.Params, &typedReq); err != nil {
			return nil, err
		}

		return d.governanceDomain.GetProposal(ctx, &typedReq)

	case "getVotingPower":
		typedReq := model.GetVotingPowerRequest{}
		if err := decodeParams(ctx, req.Params, &typedReq); err != nil {
			return nil, err
		}

		return d.governanceDomain.GetVotingPower(ctx, &typedReq)

	default:
		return nil, errorx.New(errorx.UnknownOperation, "Unknown method %s of governance", req.Method)
	}
}

func (d *kwetuDomain) executeCommunity(ctx context.Context, req *model.KwetuRequest) (any, error) {
	switch req.Method {
	case "getMemberCount":
		typedReq := model.GetMemberCountRequest{}
		if err := decodeParams(ctx, req.Params, &typedReq); err != nil {
			return nil, err
		}

		return d.communityDomain.GetMemberCount(ctx, &typedReq)

	case "getMemberStats":
		typedReq := model.GetMemberStatsRequest{}
		if err := decodeParams(ctx, req.Params, &typedReq); err != nil {
			return nil, err
		}

		return d.communityDomain.GetMemberStats(ctx, &typedReq)

	case "getEngagementMetrics":
		typedReq := model.GetEngagementMetricsRequest{}
		if err := decodeParams(ctx, req.Params, &typedReq); err != nil {
			return nil, err
		}

		return d.communityDomain.GetEngagementMetrics(ctx, &typedReq)

	default:
		return nil, errorx.New(errorx.UnknownOperation, "Unknown method %s of community", req.Method)
	}
}

func decodeParams(ctx context.Context, params map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  target,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create params decoder: %v", err)
		return errorx.Unknown
	}

	if err := decoder.Decode(params); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid params: %v", err)
	}

	return nil
}
