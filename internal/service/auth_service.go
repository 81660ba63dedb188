package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fusaf/role-request-service/internal/auth"
	"github.com/fusaf/role-request-service/internal/config"
	"github.com/fusaf/role-request-service/internal/domain"
	"github.com/fusaf/role-request-service/internal/repository"
	apperrors "github.com/fusaf/role-request-service/pkg/util"
)

// AuthService coordinates account registration and login flows.
type AuthService struct {
	accounts    repository.AccountRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	defaultRole string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, accounts repository.AccountRepository) *AuthService {
	return &AuthService{
		accounts:    accounts,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost:  cfg.Auth.BcryptCost,
		defaultRole: cfg.RoleRequest.DefaultCurrentRole,
	}
}

// TokenManager exposes the manager for middleware construction.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new account holding the default role.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Account, string, time.Time, error) {
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{s.defaultRole},
		Status:       domain.AccountStatusActive,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Email, account.Roles)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// SetAccountStatus activates or suspends an account. Suspended accounts fail
// login and bearer authentication until reactivated.
func (s *AuthService) SetAccountStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	if status != domain.AccountStatusActive && status != domain.AccountStatusSuspended {
		return nil, apperrors.NewValidationError("status must be ACTIVE or SUSPENDED", map[string]any{
			"status": status,
		})
	}

	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", map[string]any{"account_id": id})
		}
		return nil, err
	}

	account.Status = status
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login authenticates an account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if account.Status != domain.AccountStatusActive {
		return nil, "", time.Time{}, errors.New("account suspended")
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Email, account.Roles)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}
