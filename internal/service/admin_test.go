package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/service"
)

func newAdminService(env *testEnv) service.AdminService {
	return service.NewAdminService(env.repos.Stations, env.repos.Companies, env.emailSvc)
}

func seedPendingStation(ctx context.Context, env *testEnv, id string) {
	station := env.seedStation(ctx, id, 200, 5, 5)
	if err := env.repos.Stations.UpdateStatus(ctx, station.ID, domain.StationStatusPending); err != nil {
		panic(err)
	}
}

func TestListPendingStations(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedPendingStation(ctx, env, "station-pending")
	env.seedStation(ctx, "station-active", 200, 5, 5)
	svc := newAdminService(env)

	stations, err := svc.ListPendingStations(ctx)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "station-pending", stations[0].ID)
}

func TestReviewStation(t *testing.T) {
	ctx := context.Background()

	t.Run("approve", func(t *testing.T) {
		env := newTestEnv()
		seedCompany(ctx, env, "company-1", "ChargeCo")
		seedPendingStation(ctx, env, "station-1")
		env.emailSvc.On("SendStationReviewNotice", mock.Anything, "ChargeCo@example.com", "Test Station", true).Return(nil)
		svc := newAdminService(env)

		require.NoError(t, svc.ReviewStation(ctx, "station-1", true))

		station, err := env.repos.Stations.GetByID(ctx, "station-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StationStatusActive, station.Status)
		env.emailSvc.AssertExpectations(t)
	})

	t.Run("reject", func(t *testing.T) {
		env := newTestEnv()
		seedCompany(ctx, env, "company-1", "ChargeCo")
		seedPendingStation(ctx, env, "station-1")
		env.emailSvc.On("SendStationReviewNotice", mock.Anything, "ChargeCo@example.com", "Test Station", false).Return(nil)
		svc := newAdminService(env)

		require.NoError(t, svc.ReviewStation(ctx, "station-1", false))

		station, err := env.repos.Stations.GetByID(ctx, "station-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StationStatusRejected, station.Status)
	})

	t.Run("not pending", func(t *testing.T) {
		env := newTestEnv()
		env.seedStation(ctx, "station-1", 200, 5, 5)
		svc := newAdminService(env)

		err := svc.ReviewStation(ctx, "station-1", true)
		assert.Error(t, err)
	})
}

func TestSuspendAndReinstateStation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.seedStation(ctx, "station-1", 200, 5, 5)
	svc := newAdminService(env)

	require.NoError(t, svc.SuspendStation(ctx, "station-1", "repeated outages"))
	station, err := env.repos.Stations.GetByID(ctx, "station-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StationStatusSuspended, station.Status)

	t.Run("suspending twice fails", func(t *testing.T) {
		assert.Error(t, svc.SuspendStation(ctx, "station-1", "again"))
	})

	require.NoError(t, svc.ReinstateStation(ctx, "station-1"))
	station, err = env.repos.Stations.GetByID(ctx, "station-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StationStatusActive, station.Status)

	t.Run("reinstating a non-suspended station fails", func(t *testing.T) {
		assert.Error(t, svc.ReinstateStation(ctx, "station-1"))
	})
}

func TestAccountService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.seedAccount(ctx, "user-1", 500)
	svc := service.NewAccountService(env.repos.Accounts)

	account, err := svc.AddFunds(ctx, "user-1", 2500)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), account.WalletBalanceCents)

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := svc.AddFunds(ctx, "user-1", 0)
		assert.Error(t, err)
		_, err = svc.AddFunds(ctx, "user-1", -100)
		assert.Error(t, err)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.AddFunds(ctx, "nobody", 100)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
