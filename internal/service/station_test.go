package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/service"
)

func seedCompany(ctx context.Context, env *testEnv, id, name string) {
	company := &domain.Company{ID: id, Name: name, Email: name + "@example.com"}
	if err := env.repos.Companies.Create(ctx, company); err != nil {
		panic(err)
	}
}

func TestRegisterStation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedCompany(ctx, env, "company-1", "ChargeCo")
	svc := service.NewStationService(env.repos.Stations, env.repos.Companies)

	station, err := svc.RegisterStation(ctx, "company-1", "Downtown Hub", "1 Main St", 8, 250)
	require.NoError(t, err)

	assert.Equal(t, domain.StationStatusPending, station.Status, "new stations await review")
	assert.Equal(t, int64(8), station.TotalChargers)
	assert.Equal(t, int64(8), station.VacantChargers, "all chargers start vacant")
	assert.Equal(t, int64(250), station.PricePerMinuteCents)

	t.Run("validation", func(t *testing.T) {
		_, err := svc.RegisterStation(ctx, "company-1", "Bad", "", 0, 250)
		assert.Error(t, err)
		_, err = svc.RegisterStation(ctx, "company-1", "Bad", "", 8, 0)
		assert.Error(t, err)
		_, err = svc.RegisterStation(ctx, "no-such-company", "Bad", "", 8, 250)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGetStation_ResolvesCompany(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedCompany(ctx, env, "company-1", "ChargeCo")
	env.seedStation(ctx, "station-1", 200, 3, 5)
	svc := service.NewStationService(env.repos.Stations, env.repos.Companies)

	station, company, err := svc.GetStation(ctx, "station-1")
	require.NoError(t, err)
	assert.Equal(t, "station-1", station.ID)
	assert.Equal(t, "ChargeCo", company.Name)
}

func TestSetAvailability(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seedCompany(ctx, env, "company-1", "ChargeCo")
	env.seedStation(ctx, "station-1", 200, 3, 5)
	svc := service.NewStationService(env.repos.Stations, env.repos.Companies)

	t.Run("not the owner", func(t *testing.T) {
		err := svc.SetAvailability(ctx, "other-company", "station-1", false)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("toggle", func(t *testing.T) {
		require.NoError(t, svc.SetAvailability(ctx, "company-1", "station-1", false))
		station, err := env.repos.Stations.GetByID(ctx, "station-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StationStatusInactive, station.Status)

		require.NoError(t, svc.SetAvailability(ctx, "company-1", "station-1", true))
		station, err = env.repos.Stations.GetByID(ctx, "station-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StationStatusActive, station.Status)
	})

	t.Run("moderation states are off limits", func(t *testing.T) {
		require.NoError(t, env.repos.Stations.UpdateStatus(ctx, "station-1", domain.StationStatusSuspended))
		err := svc.SetAvailability(ctx, "company-1", "station-1", true)
		assert.Error(t, err)

		station, getErr := env.repos.Stations.GetByID(ctx, "station-1")
		require.NoError(t, getErr)
		assert.Equal(t, domain.StationStatusSuspended, station.Status)
	})
}

func TestListActiveStations(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.seedStation(ctx, "station-1", 200, 3, 5)
	env.seedStation(ctx, "station-2", 300, 2, 2)
	require.NoError(t, env.repos.Stations.UpdateStatus(ctx, "station-2", domain.StationStatusInactive))
	svc := service.NewStationService(env.repos.Stations, env.repos.Companies)

	stations, err := svc.ListActiveStations(ctx)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "station-1", stations[0].ID)
}
