package repository_test

import (
	"testing"
	"time"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_activityRepository_DistinctUserIDs(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	activityRepo := repository.NewActivityRepository()

	// Two events by the same user count once.
	testutil.SampleActivity(ctx, &entity.ActivityEvent{UserID: "user1", DaoID: dao.ID})
	testutil.SampleActivity(ctx, &entity.ActivityEvent{UserID: "user1", DaoID: dao.ID})
	testutil.SampleActivity(ctx, &entity.ActivityEvent{UserID: "user2", DaoID: dao.ID})

	testutil.SampleActivity(ctx, &entity.ActivityEvent{
		UserID:    "user3",
		DaoID:     dao.ID,
		CreatedAt: time.Now().AddDate(0, 0, -60),
	})

	users, err := activityRepo.DistinctUserIDs(
		ctx, dao.ID, time.Now().AddDate(0, 0, -30), time.Now())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"user1", "user2"}, users)
}

func Test_activityRepository_GetRecentByUser(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	activityRepo := repository.NewActivityRepository()

	old := testutil.SampleActivity(ctx, &entity.ActivityEvent{
		UserID:    "user1",
		DaoID:     dao.ID,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	})
	recent := testutil.SampleActivity(ctx, &entity.ActivityEvent{
		UserID:    "user1",
		DaoID:     dao.ID,
		CreatedAt: time.Now().Add(-time.Hour),
	})

	events, err := activityRepo.GetRecentByUser(ctx, "user1", 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, recent.ID, events[0].ID)
	require.Equal(t, old.ID, events[1].ID)

	limited, err := activityRepo.GetRecentByUser(ctx, "user1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, recent.ID, limited[0].ID)
}
