package domain

import (
	"context"
	"errors"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/model"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/enum"
	"github.com/mtaadao/backend/pkg/errorx"
	"github.com/mtaadao/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GovernanceDomain interface {
	GetProposals(ctx context.Context, req *model.GetProposalsRequest) (*model.GetProposalsResponse, error)
	GetProposal(ctx context.Context, req *model.GetProposalRequest) (*model.GetProposalResponse, error)
	GetVotingPower(ctx context.Context, req *model.GetVotingPowerRequest) (*model.GetVotingPowerResponse, error)
}

type governanceDomain struct {
	proposalRepo   repository.ProposalRepository
	voteRepo       repository.VoteRepository
	delegationRepo repository.VoteDelegationRepository
	activityRepo   repository.ActivityRepository
}

func NewGovernanceDomain(
	proposalRepo repository.ProposalRepository,
	voteRepo repository.VoteRepository,
	delegationRepo repository.VoteDelegationRepository,
	activityRepo repository.ActivityRepository,
) *governanceDomain {
	return &governanceDomain{
		proposalRepo:   proposalRepo,
		voteRepo:       voteRepo,
		delegationRepo: delegationRepo,
		activityRepo:   activityRepo,
	}
}

func (d *governanceDomain) GetProposals(
	ctx context.Context, req *model.GetProposalsRequest,
) (*model.GetProposalsResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	var status entity.ProposalStatusType
	if req.Status != "" {
		var err error
		status, err = enum.ToEnum[entity.ProposalStatusType](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid proposal status %s", req.Status)
		}
	}

	proposals, err := d.proposalRepo.GetList(ctx, repository.GetListProposalFilter{
		DaoID:  req.DaoID,
		Status: status,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get proposals of dao %s: %v", req.DaoID, err)
		return nil, errorx.Unknown
	}

	total, err := d.proposalRepo.Count(ctx, repository.StatisticProposalFilter{
		DaoID:  req.DaoID,
		Status: status,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count proposals of dao %s: %v", req.DaoID, err)
		return nil, errorx.Unknown
	}

	result := []model.Proposal{}
	for _, p := range proposals {
		result = append(result, convertProposal(&p))
	}

	return &model.GetProposalsResponse{Proposals: result, Total: total}, nil
}

func (d *governanceDomain) GetProposal(
	ctx context.Context, req *model.GetProposalRequest,
) (*model.GetProposalResponse, error) {
	proposal, err := d.proposalRepo.GetByID(ctx, req.ProposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found proposal")
		}

		xcontext.Logger(ctx).Errorf("Cannot get proposal: %v", err)
		return nil, errorx.Unknown
	}

	tally, err := d.voteRepo.CountByType(ctx, req.ProposalID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot tally votes of proposal %s: %v", req.ProposalID, err)
		return nil, errorx.Unknown
	}

	resp := &model.GetProposalResponse{Proposal: convertProposal(proposal)}
	for _, t := range tally {
		switch t.Type {
		case entity.VoteFor:
			resp.VotesFor = t.Count
		case entity.VoteAgainst:
			resp.VotesAgainst = t.Count
		case entity.VoteAbstain:
			resp.VotesAbstain = t.Count
		}

		resp.TotalVotes += t.Count
	}

	return resp, nil
}

// GetVotingPower returns all zeros for a user with no contributions and no
// delegations. Multiple delegation rows per delegator are summed rather than
// rejected; the store does not enforce single-delegate cardinality.
func (d *governanceDomain) GetVotingPower(
	ctx context.Context, req *model.GetVotingPowerRequest,
) (*model.GetVotingPowerResponse, error) {
	contributions, err := d.activityRepo.Count(ctx, repository.StatisticActivityFilter{
		UserID: req.UserID,
		DaoID:  req.DaoID,
		Type:   entity.ActivityContribution,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count contributions of user %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	incoming, err := d.delegationRepo.CountIncoming(ctx, req.UserID, req.DaoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count incoming delegations of user %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	outgoing, err := d.delegationRepo.CountOutgoing(ctx, req.UserID, req.DaoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count outgoing delegations of user %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	power := contributions * xcontext.Configs(ctx).Analytics.VotingPowerWeight
	delegated := incoming - outgoing

	return &model.GetVotingPowerResponse{
		Power:     power,
		Delegated: delegated,
		Total:     power + delegated,
	}, nil
}

func convertProposal(proposal *entity.Proposal) model.Proposal {
	return model.Proposal{
		ID:         proposal.ID,
		DaoID:      proposal.DaoID,
		ProposerID: proposal.ProposerID,
		Title:      proposal.Title,
		Status:     string(proposal.Status),
		CreatedAt:  proposal.CreatedAt,
	}
}
