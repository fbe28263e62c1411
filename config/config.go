package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database      DatabaseConfigs
	ApiServer     ServerConfigs
	MetricsServer ServerConfigs
	Redis         RedisConfigs
	Kafka         KafkaConfigs
	Analytics     AnalyticsConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string

	DefaultLimit int
	MaxLimit     int
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string

	// RefreshTopic is the topic the analytics sweep publishes to after every
	// cache refresh.
	RefreshTopic string
}

// AnalyticsConfigs holds the tunables of the metrics core. All of them are
// policy values, not implementation details: changing a value here changes
// the documented API contract of the aggregators.
type AnalyticsConfigs struct {
	// EngagementWindow is the rolling window classifying a member as active.
	// Treasury metrics use the same window for inflow/outflow sums.
	EngagementWindow time.Duration

	// RefreshInterval is the period of the background cache sweep.
	RefreshInterval time.Duration

	// RetentionFallback is returned as the retention rate when the prior
	// window had no active users at all. It deliberately avoids both 0 (would
	// read as "lost everyone") and 1 (would read as "kept everyone") for DAOs
	// that are simply too young to have a prior window.
	RetentionFallback float64

	// RunwayUnbounded is the runway reported when the windowed outflow is
	// zero. It signals "effectively unbounded" in months; callers must treat
	// any runway at or above it as no projected exhaustion.
	RunwayUnbounded float64

	// VotingPowerWeight is the multiplier applied to a member's contribution
	// count when computing base voting power.
	VotingPowerWeight int64

	// TopDaoLimit bounds the top-performing list in the global snapshot.
	TopDaoLimit int

	// ActiveDaoLimit bounds how many DAOs the background sweep refreshes per
	// cycle. DAOs outside this set only get fresh metrics on direct request.
	ActiveDaoLimit int

	// RecentActivitySize bounds the per-user recent activity list kept in
	// redis.
	RecentActivitySize int
}
