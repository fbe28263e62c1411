package domain

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mtaadao/backend/internal/common"
	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/model"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/dateutil"
	"github.com/mtaadao/backend/pkg/enum"
	"github.com/mtaadao/backend/pkg/errorx"
	"github.com/mtaadao/backend/pkg/xcontext"
	"github.com/mtaadao/backend/pkg/xredis"
	"github.com/puzpuzpuz/xsync"
	"golang.org/x/sync/errgroup"
)

const globalSnapshotKey = "global"

// HistoricalDataSource reconstructs a time series between two instants.
// The default implementation scans the store once per bucket; a rollup-table
// implementation can replace it without touching callers.
type HistoricalDataSource interface {
	Series(ctx context.Context, daoID string, start, end time.Time, interval dateutil.Interval) ([]model.HistoricalData, error)
}

type AnalyticsDomain interface {
	GetRealTimeMetrics(ctx context.Context, req *model.GetAnalyticsRequest) (*model.GetAnalyticsResponse, error)
	GetHistoricalData(ctx context.Context, req *model.GetHistoricalAnalyticsRequest) (*model.GetHistoricalAnalyticsResponse, error)
	GetPerformanceBenchmarks(ctx context.Context, req *model.GetBenchmarksRequest) (*model.GetBenchmarksResponse, error)
	ExportCSV(ctx context.Context, req *model.ExportAnalyticsRequest) (*model.ExportAnalyticsResponse, error)
	TrackActivity(ctx context.Context, req *model.TrackActivityRequest) (*model.TrackActivityResponse, error)
	GetRecentActivity(ctx context.Context, req *model.GetRecentActivityRequest) (*model.GetRecentActivityResponse, error)
	RefreshSnapshot(ctx context.Context, daoID string) (*model.AnalyticsMetrics, error)
}

type analyticsDomain struct {
	daoRepo         repository.DAORepository
	userRepo        repository.UserRepository
	memberRepo      repository.MemberRepository
	proposalRepo    repository.ProposalRepository
	voteRepo        repository.VoteRepository
	taskRepo        repository.TaskRepository
	transactionRepo repository.TransactionRepository
	vaultRepo       repository.VaultRepository
	activityRepo    repository.ActivityRepository

	redisClient xredis.Client
	historical  HistoricalDataSource

	// snapshotCache is last-write-wins by design: the sweep and on-demand
	// requests both overwrite entries wholesale, never merge.
	snapshotCache *xsync.MapOf[string, model.AnalyticsMetrics]
}

func NewAnalyticsDomain(
	daoRepo repository.DAORepository,
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	proposalRepo repository.ProposalRepository,
	voteRepo repository.VoteRepository,
	taskRepo repository.TaskRepository,
	transactionRepo repository.TransactionRepository,
	vaultRepo repository.VaultRepository,
	activityRepo repository.ActivityRepository,
	redisClient xredis.Client,
) *analyticsDomain {
	return &analyticsDomain{
		daoRepo:         daoRepo,
		userRepo:        userRepo,
		memberRepo:      memberRepo,
		proposalRepo:    proposalRepo,
		voteRepo:        voteRepo,
		taskRepo:        taskRepo,
		transactionRepo: transactionRepo,
		vaultRepo:       vaultRepo,
		activityRepo:    activityRepo,
		redisClient:     redisClient,
		historical: &bucketScanSource{
			daoRepo:         daoRepo,
			userRepo:        userRepo,
			proposalRepo:    proposalRepo,
			transactionRepo: transactionRepo,
		},
		snapshotCache: xsync.NewMapOf[model.AnalyticsMetrics](),
	}
}

// GetRealTimeMetrics serves from the snapshot cache when warm; the cold path
// computes synchronously and leaves the cache warm for the next caller.
func (d *analyticsDomain) GetRealTimeMetrics(
	ctx context.Context, req *model.GetAnalyticsRequest,
) (*model.GetAnalyticsResponse, error) {
	key := req.DaoID
	if key == "" {
		key = globalSnapshotKey
	}

	if metrics, ok := d.snapshotCache.Load(key); ok {
		return &model.GetAnalyticsResponse{Metrics: metrics}, nil
	}

	metrics, err := d.RefreshSnapshot(ctx, req.DaoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compute snapshot of %s: %v", key, err)
		return nil, errorx.Unknown
	}

	return &model.GetAnalyticsResponse{Metrics: *metrics}, nil
}

// RefreshSnapshot recomputes one snapshot wholesale and overwrites its cache
// entry. An empty daoID refreshes the global snapshot.
func (d *analyticsDomain) RefreshSnapshot(ctx context.Context, daoID string) (*model.AnalyticsMetrics, error) {
	metrics, err := d.computeSnapshot(ctx, daoID)
	if err != nil {
		return nil, err
	}

	key := daoID
	if key == "" {
		key = globalSnapshotKey
	}

	d.snapshotCache.Store(key, *metrics)
	return metrics, nil
}

func (d *analyticsDomain) computeSnapshot(ctx context.Context, daoID string) (*model.AnalyticsMetrics, error) {
	var (
		totalDaos    int64
		totalUsers   int64
		totalVotes   int64
		totalTasks   int64
		txVolume     float64
		statusCounts []repository.ProposalStatusCount
		engagement   float64
		topDaos      []model.DaoPerformance
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if daoID != "" {
			totalDaos = 1
			return nil
		}

		var err error
		totalDaos, err = d.daoRepo.Count(egCtx)
		return err
	})

	eg.Go(func() error {
		var err error
		totalUsers, err = d.userRepo.Count(egCtx)
		return err
	})

	eg.Go(func() error {
		var err error
		totalVotes, err = d.voteRepo.Count(egCtx, repository.StatisticVoteFilter{DaoID: daoID})
		return err
	})

	eg.Go(func() error {
		var err error
		totalTasks, err = d.taskRepo.Count(egCtx, repository.StatisticTaskFilter{DaoID: daoID})
		return err
	})

	eg.Go(func() error {
		var err error
		txVolume, err = d.transactionRepo.SumAmount(egCtx, repository.StatisticTransactionFilter{DaoID: daoID})
		return err
	})

	eg.Go(func() error {
		var err error
		statusCounts, err = d.proposalRepo.CountByStatus(egCtx, repository.StatisticProposalFilter{DaoID: daoID})
		return err
	})

	eg.Go(func() error {
		var err error
		engagement, err = d.calculateEngagement(egCtx, daoID)
		return err
	})

	eg.Go(func() error {
		var err error
		topDaos, err = d.topPerformingDaos(egCtx, xcontext.Configs(ctx).Analytics.TopDaoLimit)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var totalProposals, executed int64
	for _, sc := range statusCounts {
		totalProposals += sc.Count
		if sc.Status == entity.ProposalExecuted {
			executed = sc.Count
		}
	}

	successRate := float64(0)
	if totalProposals > 0 {
		successRate = float64(executed) / float64(totalProposals) * 100
	}

	return &model.AnalyticsMetrics{
		TotalDaos:              totalDaos,
		TotalProposals:         totalProposals,
		TotalVotes:             totalVotes,
		TotalUsers:             totalUsers,
		TotalTasks:             totalTasks,
		TotalTransactionVolume: txVolume,
		AvgProposalSuccessRate: successRate,
		AvgUserEngagement:      engagement,
		TopPerformingDaos:      topDaos,
		ComputedAt:             time.Now(),
	}, nil
}

// calculateEngagement returns the active rate as a percentage. The global
// snapshot measures distinct active users against all users; a DAO snapshot
// measures them against the DAO's membership.
func (d *analyticsDomain) calculateEngagement(ctx context.Context, daoID string) (float64, error) {
	now := time.Now()
	windowStart := now.Add(-xcontext.Configs(ctx).Analytics.EngagementWindow)

	active, err := d.activityRepo.DistinctUserIDs(ctx, daoID, windowStart, now)
	if err != nil {
		return 0, err
	}

	var total int64
	if daoID == "" {
		total, err = d.userRepo.Count(ctx)
	} else {
		total, err = d.memberRepo.Count(ctx, daoID)
	}
	if err != nil {
		return 0, err
	}

	if total == 0 {
		return 0, nil
	}

	return float64(len(active)) / float64(total) * 100, nil
}

func (d *analyticsDomain) topPerformingDaos(ctx context.Context, limit int) ([]model.DaoPerformance, error) {
	daos, err := d.daoRepo.GetList(ctx, repository.GetListDAOFilter{
		Limit:         limit,
		ByMemberCount: true,
	})
	if err != nil {
		return nil, err
	}

	result := []model.DaoPerformance{}
	for _, dao := range daos {
		statusCounts, err := d.proposalRepo.CountByStatus(ctx, repository.StatisticProposalFilter{DaoID: dao.ID})
		if err != nil {
			return nil, err
		}

		var total, executed int64
		for _, sc := range statusCounts {
			total += sc.Count
			if sc.Status == entity.ProposalExecuted {
				executed = sc.Count
			}
		}

		successRate := float64(0)
		if total > 0 {
			successRate = float64(executed) / float64(total) * 100
		}

		aggregate, err := d.vaultRepo.Aggregate(ctx, dao.ID)
		if err != nil {
			return nil, err
		}

		result = append(result, model.DaoPerformance{
			ID:            dao.ID,
			Name:          dao.DisplayName,
			MemberCount:   dao.MemberCount,
			ProposalCount: total,
			SuccessRate:   successRate,
			TreasuryValue: aggregate.Balance,
		})
	}

	return result, nil
}

func (d *analyticsDomain) GetHistoricalData(
	ctx context.Context, req *model.GetHistoricalAnalyticsRequest,
) (*model.GetHistoricalAnalyticsResponse, error) {
	now := time.Now()

	var start time.Time
	var interval dateutil.Interval
	switch req.Period {
	case "week":
		start = now.AddDate(0, 0, -7)
		interval = dateutil.IntervalDay
	case "month":
		start = now.AddDate(0, -1, 0)
		interval = dateutil.IntervalDay
	case "quarter":
		start = now.AddDate(0, -3, 0)
		interval = dateutil.IntervalWeek
	case "year":
		start = now.AddDate(-1, 0, 0)
		interval = dateutil.IntervalMonth
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid period %s", req.Period)
	}

	data, err := d.historical.Series(ctx, req.DaoID, start, now, interval)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reconstruct %s series: %v", req.Period, err)
		return nil, errorx.Unknown
	}

	return &model.GetHistoricalAnalyticsResponse{Data: data}, nil
}

func (d *analyticsDomain) GetPerformanceBenchmarks(
	ctx context.Context, req *model.GetBenchmarksRequest,
) (*model.GetBenchmarksResponse, error) {
	daos, err := d.daoRepo.GetList(ctx, repository.GetListDAOFilter{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list daos: %v", err)
		return nil, errorx.Unknown
	}

	snapshots := make([]model.AnalyticsMetrics, 0, len(daos))
	for _, dao := range daos {
		metrics, err := d.computeSnapshot(ctx, dao.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot compute snapshot of dao %s: %v", dao.ID, err)
			return nil, errorx.Unknown
		}

		snapshots = append(snapshots, *metrics)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].AvgUserEngagement > snapshots[j].AvgUserEngagement
	})

	global, err := d.computeSnapshot(ctx, "")
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compute global snapshot: %v", err)
		return nil, errorx.Unknown
	}

	pick := func(index int) model.AnalyticsMetrics {
		if index < 0 || index >= len(snapshots) {
			return *global
		}

		return snapshots[index]
	}

	quartile := len(snapshots) / 4
	return &model.GetBenchmarksResponse{
		Industry: model.BenchmarkMetrics{
			AvgGovernanceParticipation: 65,
			AvgProposalSuccessRate:     72,
			AvgTreasuryGrowth:          15,
		},
		TopQuartile:    pick(0),
		Median:         pick(len(snapshots) / 2),
		BottomQuartile: pick(len(snapshots) - quartile - 1),
	}, nil
}

func (d *analyticsDomain) ExportCSV(
	ctx context.Context, req *model.ExportAnalyticsRequest,
) (*model.ExportAnalyticsResponse, error) {
	var records [][]string
	switch req.Type {
	case "metrics":
		resp, err := d.GetRealTimeMetrics(ctx, &model.GetAnalyticsRequest{DaoID: req.DaoID})
		if err != nil {
			return nil, err
		}

		m := resp.Metrics
		records = [][]string{
			{
				"total_daos", "total_proposals", "total_votes", "total_users", "total_tasks",
				"total_transaction_volume", "avg_proposal_success_rate", "avg_user_engagement",
				"computed_at",
			},
			{
				fmt.Sprintf("%d", m.TotalDaos),
				fmt.Sprintf("%d", m.TotalProposals),
				fmt.Sprintf("%d", m.TotalVotes),
				fmt.Sprintf("%d", m.TotalUsers),
				fmt.Sprintf("%d", m.TotalTasks),
				fmt.Sprintf("%g", m.TotalTransactionVolume),
				fmt.Sprintf("%g", m.AvgProposalSuccessRate),
				fmt.Sprintf("%g", m.AvgUserEngagement),
				m.ComputedAt.Format(time.RFC3339),
			},
		}

	case "historical":
		period := req.Period
		if period == "" {
			period = "month"
		}

		resp, err := d.GetHistoricalData(ctx, &model.GetHistoricalAnalyticsRequest{
			Period: period,
			DaoID:  req.DaoID,
		})
		if err != nil {
			return nil, err
		}

		records = [][]string{{
			"timestamp", "dao_count", "user_count", "proposal_count",
			"transaction_volume", "avg_success_rate",
		}}
		for _, point := range resp.Data {
			records = append(records, []string{
				point.Timestamp,
				fmt.Sprintf("%d", point.DaoCount),
				fmt.Sprintf("%d", point.UserCount),
				fmt.Sprintf("%d", point.ProposalCount),
				fmt.Sprintf("%g", point.TransactionVolume),
				fmt.Sprintf("%g", point.AvgSuccessRate),
			})
		}

	case "benchmarks":
		resp, err := d.GetPerformanceBenchmarks(ctx, &model.GetBenchmarksRequest{})
		if err != nil {
			return nil, err
		}

		records = [][]string{
			{"type", "avg_governance_participation", "avg_proposal_success_rate", "avg_treasury_growth"},
			{
				"industry",
				fmt.Sprintf("%g", resp.Industry.AvgGovernanceParticipation),
				fmt.Sprintf("%g", resp.Industry.AvgProposalSuccessRate),
				fmt.Sprintf("%g", resp.Industry.AvgTreasuryGrowth),
			},
			{
				"platform_top",
				fmt.Sprintf("%g", resp.TopQuartile.AvgUserEngagement),
				fmt.Sprintf("%g", resp.TopQuartile.AvgProposalSuccessRate),
				fmt.Sprintf("%g", resp.TopQuartile.TotalTransactionVolume),
			},
			{
				"platform_median",
				fmt.Sprintf("%g", resp.Median.AvgUserEngagement),
				fmt.Sprintf("%g", resp.Median.AvgProposalSuccessRate),
				fmt.Sprintf("%g", resp.Median.TotalTransactionVolume),
			},
		}

	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid export type %s", req.Type)
	}

	var builder strings.Builder
	writer := csv.NewWriter(&builder)
	if err := writer.WriteAll(records); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write csv: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ExportAnalyticsResponse{Type: req.Type, Content: builder.String()}, nil
}

// TrackActivity swallows both write failures. A lost activity row silently
// under-counts history under a sustained storage outage; the failure counter
// is the only signal, so alert on it.
func (d *analyticsDomain) TrackActivity(
	ctx context.Context, req *model.TrackActivityRequest,
) (*model.TrackActivityResponse, error) {
	activityType, err := enum.ToEnum[entity.ActivityType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid activity type %s", req.Type)
	}

	event := &entity.ActivityEvent{
		ID:        xcontext.SnowFlake(ctx).Generate().Int64(),
		CreatedAt: time.Now(),
		UserID:    req.UserID,
		DaoID:     req.DaoID,
		Type:      activityType,
		Metadata:  entity.Map(req.Metadata),
	}

	if err := d.activityRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist activity of user %s: %v", req.UserID, err)
		common.PromCounters[common.ActivityDurableWriteFailure].
			WithLabelValues(req.DaoID).Inc()
	}

	d.pushRecentActivity(ctx, event)
	return &model.TrackActivityResponse{}, nil
}

func (d *analyticsDomain) pushRecentActivity(ctx context.Context, event *entity.ActivityEvent) {
	entry, err := json.Marshal(model.RecentActivity{
		ID:        event.ID,
		DaoID:     event.DaoID,
		Type:      string(event.Type),
		Metadata:  event.Metadata,
		CreatedAt: event.CreatedAt,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal recent activity: %v", err)
		return
	}

	key := common.RedisKeyRecentActivity(event.UserID)
	if err := d.redisClient.LPush(ctx, key, string(entry)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot push recent activity of user %s: %v", event.UserID, err)
		return
	}

	size := int64(xcontext.Configs(ctx).Analytics.RecentActivitySize)
	if err := d.redisClient.LTrim(ctx, key, 0, size-1); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot trim recent activity of user %s: %v", event.UserID, err)
	}
}

// GetRecentActivity prefers the redis ring buffer and falls back to the
// durable store when redis is unavailable or empty.
func (d *analyticsDomain) GetRecentActivity(
	ctx context.Context, req *model.GetRecentActivityRequest,
) (*model.GetRecentActivityResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = xcontext.Configs(ctx).Analytics.RecentActivitySize
	}

	entries, err := d.redisClient.LRange(ctx, common.RedisKeyRecentActivity(req.UserID), 0, int64(limit)-1)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read recent activity of user %s: %v", req.UserID, err)
	}

	if len(entries) > 0 {
		activities := []model.RecentActivity{}
		for _, entry := range entries {
			var activity model.RecentActivity
			if err := json.Unmarshal([]byte(entry), &activity); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot unmarshal recent activity entry: %v", err)
				continue
			}

			activities = append(activities, activity)
		}

		return &model.GetRecentActivityResponse{Activities: activities}, nil
	}

	events, err := d.activityRepo.GetRecentByUser(ctx, req.UserID, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recent activity of user %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	activities := []model.RecentActivity{}
	for _, event := range events {
		activities = append(activities, model.RecentActivity{
			ID:        event.ID,
			DaoID:     event.DaoID,
			Type:      string(event.Type),
			Metadata:  event.Metadata,
			CreatedAt: event.CreatedAt,
		})
	}

	return &model.GetRecentActivityResponse{Activities: activities}, nil
}

// bucketScanSource runs one point-in-time aggregation per bucket. O(buckets)
// queries is a known ceiling; replace through HistoricalDataSource when a
// rollup table exists.
type bucketScanSource struct {
	daoRepo         repository.DAORepository
	userRepo        repository.UserRepository
	proposalRepo    repository.ProposalRepository
	transactionRepo repository.TransactionRepository
}

func (s *bucketScanSource) Series(
	ctx context.Context, daoID string, start, end time.Time, interval dateutil.Interval,
) ([]model.HistoricalData, error) {
	result := []model.HistoricalData{}
	for _, cursor := range dateutil.Buckets(start, end, interval) {
		dayStart := dateutil.BeginningOfDay(cursor)
		dayEnd := dateutil.EndOfDay(cursor)

		point := model.HistoricalData{Timestamp: cursor.Format("2006-01-02")}

		eg, egCtx := errgroup.WithContext(ctx)

		eg.Go(func() error {
			if daoID != "" {
				point.DaoCount = 1
				return nil
			}

			var err error
			point.DaoCount, err = s.daoRepo.CountCreatedBefore(egCtx, dayEnd)
			return err
		})

		eg.Go(func() error {
			var err error
			point.UserCount, err = s.userRepo.CountCreatedBefore(egCtx, dayEnd)
			return err
		})

		eg.Go(func() error {
			var err error
			point.ProposalCount, err = s.proposalRepo.Count(egCtx, repository.StatisticProposalFilter{
				DaoID:        daoID,
				CreatedStart: dayStart,
				CreatedEnd:   dayEnd,
			})
			return err
		})

		eg.Go(func() error {
			var err error
			point.TransactionVolume, err = s.transactionRepo.SumAmount(egCtx, repository.StatisticTransactionFilter{
				DaoID:        daoID,
				CreatedStart: dayStart,
				CreatedEnd:   dayEnd,
			})
			return err
		})

		eg.Go(func() error {
			statusCounts, err := s.proposalRepo.CountByStatus(egCtx, repository.StatisticProposalFilter{
				DaoID:        daoID,
				CreatedStart: dayStart,
				CreatedEnd:   dayEnd,
			})
			if err != nil {
				return err
			}

			var total, executed int64
			for _, sc := range statusCounts {
				total += sc.Count
				if sc.Status == entity.ProposalExecuted {
					executed = sc.Count
				}
			}

			if total > 0 {
				point.AvgSuccessRate = float64(executed) / float64(total) * 100
			}

			return nil
		})

		if err := eg.Wait(); err != nil {
			return nil, err
		}

		result = append(result, point)
	}

	return result, nil
}
