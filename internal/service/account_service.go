package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"taskpilot/internal/domain"
	"taskpilot/internal/repository"
)

const maxUsernameLength = 150

// AccountService describes account registration and credential checks.
type AccountService interface {
	Register(ctx context.Context, username, password string) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (*domain.Account, error)
}

type accountService struct {
	accounts       repository.AccountRepository
	hasher         PasswordHasher
	minPasswordLen int

	dummyOnce sync.Once
	dummyHash string
}

func NewAccountService(accounts repository.AccountRepository, hasher PasswordHasher, minPasswordLen int) AccountService {
	return &accountService{
		accounts:       accounts,
		hasher:         hasher,
		minPasswordLen: minPasswordLen,
	}
}

// Register stores a new account. Usernames are trimmed; passwords are hashed
// exactly as given.
func (s *accountService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, fmt.Errorf("%w: username must be at most %d characters", domain.ErrValidation, maxUsernameLength)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(password) < s.minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, s.minPasswordLen)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: hash,
	}
	if _, err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return sanitizeAccount(account), nil
}

// Login verifies credentials. Unknown usernames and wrong passwords are
// indistinguishable to the caller, and both pay for one hash comparison.
func (s *accountService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrAuthFailure
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.burnComparison(password)
			return nil, domain.ErrAuthFailure
		}
		return nil, err
	}

	match, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, domain.ErrAuthFailure
	}

	return sanitizeAccount(account), nil
}

func (s *accountService) burnComparison(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("taskpilot-timing-equalizer")
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}

func sanitizeAccount(account *domain.Account) *domain.Account {
	if account == nil {
		return nil
	}
	return &domain.Account{
		ID:        account.ID,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	}
}
