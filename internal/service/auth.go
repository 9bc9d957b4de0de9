package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/repository"
	"voltmarket-backend/internal/security"
)

type authService struct {
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	companyRepo repository.CompanyRepository
	tokens      security.TokenManager
}

func NewAuthService(
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	companyRepo repository.CompanyRepository,
	tokens security.TokenManager,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		companyRepo: companyRepo,
		tokens:      tokens,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	return s.signup(ctx, name, email, "", password, domain.UserRoleUser)
}

func (s *authService) SignupCompany(ctx context.Context, name, email, companyName, password string) (*domain.User, string, error) {
	if companyName == "" {
		return nil, "", errors.New("company name is required")
	}
	return s.signup(ctx, name, email, companyName, password, domain.UserRoleCompany)
}

func (s *authService) signup(ctx context.Context, name, email, companyName, password string, role domain.UserRole) (*domain.User, string, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", errors.New("email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
	}

	if role == domain.UserRoleCompany {
		company := &domain.Company{ID: uuid.NewString(), Name: companyName, Email: email}
		if err := s.companyRepo.Create(ctx, company); err != nil {
			return nil, "", err
		}
		user.CompanyID = company.ID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}
	// Every principal gets a wallet account, initialized empty.
	if err := s.accountRepo.Create(ctx, &domain.Account{ID: user.ID}); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, string(user.Role), user.CompanyID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", errors.New("invalid credentials")
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.New("invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, string(user.Role), user.CompanyID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
