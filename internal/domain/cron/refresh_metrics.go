package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mtaadao/backend/internal/common"
	"github.com/mtaadao/backend/internal/domain"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/pubsub"
	"github.com/mtaadao/backend/pkg/xcontext"
)

// RefreshMetricsCronJob keeps the snapshot cache warm. Every cycle it
// recomputes the global snapshot plus the first-N DAOs ordered by member
// count; DAOs outside that set only get fresh metrics on direct request.
type RefreshMetricsCronJob struct {
	analyticsDomain domain.AnalyticsDomain
	daoRepo         repository.DAORepository
	publisher       pubsub.Publisher
	interval        time.Duration
}

func NewRefreshMetricsCronJob(
	ctx context.Context,
	analyticsDomain domain.AnalyticsDomain,
	daoRepo repository.DAORepository,
	publisher pubsub.Publisher,
) *RefreshMetricsCronJob {
	return &RefreshMetricsCronJob{
		analyticsDomain: analyticsDomain,
		daoRepo:         daoRepo,
		publisher:       publisher,
		interval:        xcontext.Configs(ctx).Analytics.RefreshInterval,
	}
}

type refreshedEvent struct {
	DaoIDs      []string  `json:"dao_ids"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

func (job *RefreshMetricsCronJob) Do(ctx context.Context) {
	begin := time.Now()

	refreshed := []string{}
	if _, err := job.analyticsDomain.RefreshSnapshot(ctx, ""); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot refresh global snapshot: %v", err)
		common.PromCounters[common.MetricsRefreshFailureTotal].
			WithLabelValues("global").Inc()
	} else {
		refreshed = append(refreshed, "global")
	}

	daos, err := job.daoRepo.GetList(ctx, repository.GetListDAOFilter{
		Limit:         xcontext.Configs(ctx).Analytics.ActiveDaoLimit,
		ByMemberCount: true,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active daos: %v", err)
		return
	}

	for _, dao := range daos {
		if _, err := job.analyticsDomain.RefreshSnapshot(ctx, dao.ID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot refresh snapshot of dao %s: %v", dao.ID, err)
			common.PromCounters[common.MetricsRefreshFailureTotal].
				WithLabelValues(dao.ID).Inc()
			continue
		}

		refreshed = append(refreshed, dao.ID)
	}

	common.PromHistograms[common.MetricsRefreshDurationSecs].
		WithLabelValues().Observe(time.Since(begin).Seconds())

	job.publish(ctx, refreshed)
}

func (job *RefreshMetricsCronJob) publish(ctx context.Context, refreshed []string) {
	msg, err := json.Marshal(refreshedEvent{DaoIDs: refreshed, RefreshedAt: time.Now()})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal refreshed event: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.RefreshTopic
	err = job.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte("metrics"), Msg: msg})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish refreshed event: %v", err)
	}
}

func (job *RefreshMetricsCronJob) RunNow() bool {
	return true
}

func (job *RefreshMetricsCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
