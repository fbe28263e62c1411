package repository_test

import (
	"testing"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_vaultRepository_Upsert(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)
	vaultRepo := repository.NewVaultRepository()

	vault := testutil.SampleVault(ctx, &entity.Vault{DaoID: dao.ID, Name: "main", Balance: 100})

	// Upserting the same dao/name pair updates the balance in place.
	vault.Balance = 400
	require.NoError(t, vaultRepo.Upsert(ctx, &vault))

	aggregate, err := vaultRepo.Aggregate(ctx, dao.ID)
	require.NoError(t, err)
	require.Equal(t, float64(400), aggregate.Balance)
	require.Equal(t, int64(1), aggregate.Count)
}

func Test_vaultRepository_Aggregate_emptyDao(t *testing.T) {
	ctx := testutil.MockContext()
	dao := testutil.SampleDAO(ctx, nil)

	aggregate, err := repository.NewVaultRepository().Aggregate(ctx, dao.ID)
	require.NoError(t, err)
	require.Equal(t, float64(0), aggregate.Balance)
	require.Equal(t, int64(0), aggregate.Count)
	require.False(t, aggregate.LastUpdated.Valid)
}
