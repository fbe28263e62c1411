package domain

import (
	"context"
	"errors"
	"time"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/model"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/errorx"
	"github.com/mtaadao/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommunityDomain interface {
	GetMemberCount(ctx context.Context, req *model.GetMemberCountRequest) (*model.GetMemberCountResponse, error)
	GetMemberStats(ctx context.Context, req *model.GetMemberStatsRequest) (*model.GetMemberStatsResponse, error)
	GetEngagementMetrics(ctx context.Context, req *model.GetEngagementMetricsRequest) (*model.GetEngagementMetricsResponse, error)
}

type communityDomain struct {
	memberRepo   repository.MemberRepository
	userRepo     repository.UserRepository
	proposalRepo repository.ProposalRepository
	voteRepo     repository.VoteRepository
	activityRepo repository.ActivityRepository
}

func NewCommunityDomain(
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	proposalRepo repository.ProposalRepository,
	voteRepo repository.VoteRepository,
	activityRepo repository.ActivityRepository,
) *communityDomain {
	return &communityDomain{
		memberRepo:   memberRepo,
		userRepo:     userRepo,
		proposalRepo: proposalRepo,
		voteRepo:     voteRepo,
		activityRepo: activityRepo,
	}
}

func (d *communityDomain) GetMemberCount(
	ctx context.Context, req *model.GetMemberCountRequest,
) (*model.GetMemberCountResponse, error) {
	total, err := d.memberRepo.Count(ctx, req.DaoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count members of dao %s: %v", req.DaoID, err)
		return nil, errorx.Unknown
	}

	return &model.GetMemberCountResponse{Total: total}, nil
}

// GetMemberStats distinguishes a member with zero activity (all-zero stats)
// from a user who never joined the DAO (NotFound).
func (d *communityDomain) GetMemberStats(
	ctx context.Context, req *model.GetMemberStatsRequest,
) (*model.GetMemberStatsResponse, error) {
	member, err := d.memberRepo.Get(ctx, req.UserID, req.DaoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found member")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	contributions, err := d.activityRepo.Count(ctx, repository.StatisticActivityFilter{
		UserID: req.UserID,
		DaoID:  req.DaoID,
		Type:   entity.ActivityContribution,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count contributions of user %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	proposals, err := d.proposalRepo.Count(ctx, repository.StatisticProposalFilter{
		DaoID:      req.DaoID,
		ProposerID: req.UserID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count proposals of user %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	votes, err := d.voteRepo.Count(ctx, repository.StatisticVoteFilter{
		DaoID:  req.DaoID,
		UserID: req.UserID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count votes of user %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	return &model.GetMemberStatsResponse{
		ContributionScore:  contributions,
		ProposalsSubmitted: proposals,
		VotesParticipated:  votes,
		JoinedAt:           member.CreatedAt,
		User: model.ShortUser{
			ID:        user.ID,
			Name:      user.Name,
			AvatarURL: user.ProfilePicture,
		},
	}, nil
}

func (d *communityDomain) GetEngagementMetrics(
	ctx context.Context, req *model.GetEngagementMetricsRequest,
) (*model.GetEngagementMetricsResponse, error) {
	cfg := xcontext.Configs(ctx).Analytics
	now := time.Now()
	windowStart := now.Add(-cfg.EngagementWindow)
	priorStart := windowStart.Add(-cfg.EngagementWindow)

	total, err := d.memberRepo.Count(ctx, req.DaoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count members of dao %s: %v", req.DaoID, err)
		return nil, errorx.Unknown
	}

	current, err := d.activityRepo.DistinctUserIDs(ctx, req.DaoID, windowStart, now)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active users of dao %s: %v", req.DaoID, err)
		return nil, errorx.Unknown
	}

	prior, err := d.activityRepo.DistinctUserIDs(ctx, req.DaoID, priorStart, windowStart)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prior active users of dao %s: %v", req.DaoID, err)
		return nil, errorx.Unknown
	}

	activeRate := float64(0)
	if total > 0 {
		activeRate = float64(len(current)) / float64(total)
	}

	// An empty prior window means the DAO is too young to measure retention.
	// The fallback constant deliberately avoids both 0 and 1, which would
	// read as "lost everyone" or "kept everyone".
	retentionRate := cfg.RetentionFallback
	if len(prior) > 0 {
		currentSet := make(map[string]struct{}, len(current))
		for _, id := range current {
			currentSet[id] = struct{}{}
		}

		retained := 0
		for _, id := range prior {
			if _, ok := currentSet[id]; ok {
				retained++
			}
		}

		retentionRate = float64(retained) / float64(len(prior))
	}

	return &model.GetEngagementMetricsResponse{
		// Placeholder policy: the engagement score equals the active rate
		// until a richer formula is defined. Change it here only.
		EngagementScore: activeRate,
		ActiveRate:      activeRate,
		RetentionRate:   retentionRate,
		ActiveMembers:   int64(len(current)),
		TotalMembers:    total,
	}, nil
}
