package service

import (
	"context"
	"errors"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/repository"
)

type accountService struct {
	accountRepo repository.AccountRepository
}

func NewAccountService(accountRepo repository.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

func (s *accountService) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	return s.accountRepo.GetByID(ctx, userID)
}

// AddFunds only ever increments the wallet balance.
func (s *accountService) AddFunds(ctx context.Context, userID string, amountCents int64) (*domain.Account, error) {
	if amountCents <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if err := s.accountRepo.AddFunds(ctx, userID, amountCents); err != nil {
		return nil, err
	}
	return s.accountRepo.GetByID(ctx, userID)
}
