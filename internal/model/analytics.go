package model

import "time"

type GetAnalyticsRequest struct {
	DaoID string `json:"dao_id"`
}

type DaoPerformance struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MemberCount   int     `json:"member_count"`
	ProposalCount int64   `json:"proposal_count"`
	SuccessRate   float64 `json:"success_rate"`
	TreasuryValue float64 `json:"treasury_value"`
}

// AnalyticsMetrics is a point-in-time snapshot. It is always recomputed
// wholesale, never partially updated.
type AnalyticsMetrics struct {
	TotalDaos              int64   `json:"total_daos"`
	TotalProposals         int64   `json:"total_proposals"`
	TotalVotes             int64   `json:"total_votes"`
	TotalUsers             int64   `json:"total_users"`
	TotalTasks             int64   `json:"total_tasks"`
	TotalTransactionVolume float64 `json:"total_transaction_volume"`

	// AvgProposalSuccessRate is executed over total proposals as a
	// percentage in [0, 100]; zero when there are no proposals.
	AvgProposalSuccessRate float64 `json:"avg_proposal_success_rate"`

	// AvgUserEngagement is the active rate as a percentage in [0, 100].
	AvgUserEngagement float64 `json:"avg_user_engagement"`

	TopPerformingDaos []DaoPerformance `json:"top_performing_daos"`

	ComputedAt time.Time `json:"computed_at"`
}

type GetAnalyticsResponse struct {
	Metrics AnalyticsMetrics `json:"metrics"`
}

type GetHistoricalAnalyticsRequest struct {
	// Period is one of week, month, quarter, year.
	Period string `json:"period"`
	DaoID  string `json:"dao_id"`
}

type HistoricalData struct {
	Timestamp string `json:"timestamp"`

	// DaoCount and UserCount are cumulative counts as of the bucket end;
	// ProposalCount and TransactionVolume are per-bucket deltas.
	DaoCount          int64   `json:"dao_count"`
	UserCount         int64   `json:"user_count"`
	ProposalCount     int64   `json:"proposal_count"`
	TransactionVolume float64 `json:"transaction_volume"`
	AvgSuccessRate    float64 `json:"avg_success_rate"`
}

type GetHistoricalAnalyticsResponse struct {
	Data []HistoricalData `json:"data"`
}

type GetBenchmarksRequest struct{}

type BenchmarkMetrics struct {
	AvgGovernanceParticipation float64 `json:"avg_governance_participation"`
	AvgProposalSuccessRate     float64 `json:"avg_proposal_success_rate"`
	AvgTreasuryGrowth          float64 `json:"avg_treasury_growth"`
}

type GetBenchmarksResponse struct {
	Industry BenchmarkMetrics `json:"industry"`

	TopQuartile    AnalyticsMetrics `json:"top_quartile"`
	Median         AnalyticsMetrics `json:"median"`
	BottomQuartile AnalyticsMetrics `json:"bottom_quartile"`
}

type ExportAnalyticsRequest struct {
	// Type is one of metrics, historical, benchmarks.
	Type   string `json:"type"`
	Period string `json:"period"`
	DaoID  string `json:"dao_id"`
}

type ExportAnalyticsResponse struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type TrackActivityRequest struct {
	UserID   string         `json:"user_id"`
	DaoID    string         `json:"dao_id"`
	Type     string         `json:"type"`
	Metadata map[string]any `json:"metadata"`
}

type TrackActivityResponse struct{}

type RecentActivity struct {
	ID        int64          `json:"id"`
	DaoID     string         `json:"dao_id"`
	Type      string         `json:"type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type GetRecentActivityRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
}

type GetRecentActivityResponse struct {
	Activities []RecentActivity `json:"activities"`
}
