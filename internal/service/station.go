package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/repository"
)

type stationService struct {
	stationRepo repository.StationRepository
	companyRepo repository.CompanyRepository
}

func NewStationService(stationRepo repository.StationRepository, companyRepo repository.CompanyRepository) StationService {
	return &stationService{stationRepo: stationRepo, companyRepo: companyRepo}
}

func (s *stationService) RegisterStation(ctx context.Context, companyID, name, address string, totalChargers, pricePerMinuteCents int64) (*domain.Station, error) {
	if totalChargers <= 0 {
		return nil, errors.New("station needs at least one charger")
	}
	if pricePerMinuteCents <= 0 {
		return nil, errors.New("price per minute must be positive")
	}
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	station := &domain.Station{
		ID:                  uuid.NewString(),
		CompanyID:           companyID,
		Name:                name,
		Address:             address,
		TotalChargers:       totalChargers,
		VacantChargers:      totalChargers,
		PricePerMinuteCents: pricePerMinuteCents,
		Status:              domain.StationStatusPending,
	}
	if err := s.stationRepo.Create(ctx, station); err != nil {
		return nil, err
	}
	return station, nil
}

// GetStation resolves the owning company alongside the station; the company
// name always comes from the Company aggregate.
func (s *stationService) GetStation(ctx context.Context, id string) (*domain.Station, *domain.Company, error) {
	station, err := s.stationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	company, err := s.companyRepo.GetByID(ctx, station.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	return station, company, nil
}

func (s *stationService) ListActiveStations(ctx context.Context) ([]domain.Station, error) {
	return s.stationRepo.ListByStatus(ctx, domain.StationStatusActive)
}

func (s *stationService) ListCompanyStations(ctx context.Context, companyID string) ([]domain.Station, error) {
	return s.stationRepo.ListByCompany(ctx, companyID)
}

func (s *stationService) SetAvailability(ctx context.Context, companyID, stationID string, available bool) error {
	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		return err
	}
	if station.CompanyID != companyID {
		return domain.ErrUnauthorized
	}
	// Moderation states (pending, suspended, rejected) are owned by the
	// admin workflow and cannot be toggled by the company.
	if station.Status != domain.StationStatusActive && station.Status != domain.StationStatusInactive {
		return errors.New("station is under moderation")
	}

	status := domain.StationStatusInactive
	if available {
		status = domain.StationStatusActive
	}
	return s.stationRepo.UpdateStatus(ctx, stationID, status)
}
