package dateutil

import "time"

// Interval is the bucket step of a historical series.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

func BeginningOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Next advances a bucket cursor by one interval.
func Next(t time.Time, interval Interval) time.Time {
	switch interval {
	case IntervalWeek:
		return t.AddDate(0, 0, 7)
	case IntervalMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// Buckets returns the cursor times of a series from start through end,
// inclusive of both boundaries. A 7-day span with day steps therefore yields
// 8 cursors: the start of the span and one per following day.
func Buckets(start, end time.Time, interval Interval) []time.Time {
	var result []time.Time
	for current := start; !current.After(end); current = Next(current, interval) {
		result = append(result, current)
	}

	return result
}
