package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Buckets_inclusiveBoundaries(t *testing.T) {
	end := time.Date(2025, 8, 8, 12, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -7)

	buckets := Buckets(start, end, IntervalDay)
	require.Len(t, buckets, 8)
	require.Equal(t, start, buckets[0])
	require.Equal(t, end, buckets[7])
}

func Test_Buckets_weekAndMonthSteps(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	weeks := Buckets(start, start.AddDate(0, 0, 21), IntervalWeek)
	require.Len(t, weeks, 4)

	months := Buckets(start, start.AddDate(0, 3, 0), IntervalMonth)
	require.Len(t, months, 4)
}

func Test_BeginningAndEndOfDay(t *testing.T) {
	moment := time.Date(2025, 8, 8, 15, 30, 45, 123, time.UTC)

	begin := BeginningOfDay(moment)
	require.Equal(t, time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC), begin)

	end := EndOfDay(moment)
	require.True(t, end.After(moment))
	require.Equal(t, begin.AddDate(0, 0, 1).Add(-time.Nanosecond), end)
}
