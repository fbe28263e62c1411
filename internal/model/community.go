package model

import "time"

type ShortUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type GetMemberCountRequest struct {
	DaoID string `json:"dao_id"`
}

type GetMemberCountResponse struct {
	Total int64 `json:"total"`
}

type GetMemberStatsRequest struct {
	UserID string `json:"user_id"`
	DaoID  string `json:"dao_id"`
}

type GetMemberStatsResponse struct {
	ContributionScore  int64     `json:"contribution_score"`
	ProposalsSubmitted int64     `json:"proposals_submitted"`
	VotesParticipated  int64     `json:"votes_participated"`
	JoinedAt           time.Time `json:"joined_at"`
	User               ShortUser `json:"user"`
}

type GetEngagementMetricsRequest struct {
	DaoID string `json:"dao_id"`
}

type GetEngagementMetricsResponse struct {
	// EngagementScore currently equals ActiveRate by policy; replace the
	// formula in one place (community domain) when a richer one is defined.
	EngagementScore float64 `json:"engagement_score"`

	// ActiveRate is distinct active users over the rolling window divided by
	// total members, in [0, 1].
	ActiveRate float64 `json:"active_rate"`

	// RetentionRate is the share of the prior window's active users who were
	// active again in the current window, in [0, 1]. When the prior window
	// had no active users it equals the configured fallback.
	RetentionRate float64 `json:"retention_rate"`

	ActiveMembers int64 `json:"active_members"`
	TotalMembers  int64 `json:"total_members"`
}
