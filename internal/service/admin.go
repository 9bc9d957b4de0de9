package service

import (
	"context"
	"errors"
	"fmt"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/logger"
	"voltmarket-backend/internal/repository"
)

type adminService struct {
	stationRepo repository.StationRepository
	companyRepo repository.CompanyRepository
	emailSvc    EmailService
}

func NewAdminService(stationRepo repository.StationRepository, companyRepo repository.CompanyRepository, emailSvc EmailService) AdminService {
	return &adminService{stationRepo: stationRepo, companyRepo: companyRepo, emailSvc: emailSvc}
}

func (s *adminService) ListPendingStations(ctx context.Context) ([]domain.Station, error) {
	return s.stationRepo.ListByStatus(ctx, domain.StationStatusPending)
}

func (s *adminService) ReviewStation(ctx context.Context, stationID string, approve bool) error {
	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		return err
	}
	if station.Status != domain.StationStatusPending {
		return fmt.Errorf("station %s is not pending review", stationID)
	}

	status := domain.StationStatusRejected
	if approve {
		status = domain.StationStatusActive
	}
	if err := s.stationRepo.UpdateStatus(ctx, stationID, status); err != nil {
		return err
	}

	s.notifyCompany(ctx, station, approve)
	return nil
}

func (s *adminService) SuspendStation(ctx context.Context, stationID, reason string) error {
	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		return err
	}
	if station.Status != domain.StationStatusActive && station.Status != domain.StationStatusInactive {
		return errors.New("only active or inactive stations can be suspended")
	}
	logger.InfoContext(ctx, "Suspending station", "station_id", stationID, "reason", reason)
	return s.stationRepo.UpdateStatus(ctx, stationID, domain.StationStatusSuspended)
}

func (s *adminService) ReinstateStation(ctx context.Context, stationID string) error {
	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		return err
	}
	if station.Status != domain.StationStatusSuspended {
		return errors.New("station is not suspended")
	}
	return s.stationRepo.UpdateStatus(ctx, stationID, domain.StationStatusActive)
}

func (s *adminService) notifyCompany(ctx context.Context, station *domain.Station, approved bool) {
	company, err := s.companyRepo.GetByID(ctx, station.CompanyID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to resolve company for review notice",
			"station_id", station.ID, "company_id", station.CompanyID, "error", err)
		return
	}
	if err := s.emailSvc.SendStationReviewNotice(ctx, company.Email, station.Name, approved); err != nil {
		logger.WarnContext(ctx, "Failed to send station review notice", "station_id", station.ID, "error", err)
	}
}
