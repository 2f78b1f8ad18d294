// Package services contains server-side business logic. This file implements
// AccountService: registration, credential checks and profile reads.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gameauth/internal/common"
	"github.com/dmitrijs2005/gameauth/internal/dbx"
	"github.com/dmitrijs2005/gameauth/internal/server/cache"
	"github.com/dmitrijs2005/gameauth/internal/server/models"
	"github.com/dmitrijs2005/gameauth/internal/server/passwords"
	"github.com/dmitrijs2005/gameauth/internal/server/repositories/repomanager"
)

// AccountService provides the account operations:
//   - Register: create an account and its stats row atomically
//   - Login: verify credentials
//   - GetProfile: read the account joined with its stats
//
// Errors carry the common taxonomy: ErrorValidation, ErrorConflict,
// ErrorUnauthorized, ErrorNotFound and ErrorDependency.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      passwords.Hasher
	profiles    cache.Cache[models.ProfileView]
}

// NewAccountService constructs an AccountService. A nil profiles cache
// disables caching.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, h passwords.Hasher, profiles cache.Cache[models.ProfileView]) *AccountService {
	if profiles == nil {
		profiles = cache.Nop[models.ProfileView]{}
	}
	return &AccountService{db: db, repomanager: m, hasher: h, profiles: profiles}
}

// Register creates an account with the starting balance together with its
// stats row in one transaction; nothing persists if either insert fails.
func (s *AccountService) Register(ctx context.Context, userName, password string) (*models.Account, error) {
	if userName == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, passwords.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
		}
		return nil, fmt.Errorf("%w: error hashing password: %w", common.ErrorDependency, err)
	}

	var created *models.Account
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		account, err := s.repomanager.Accounts(tx).Create(ctx, &models.Account{
			UserName:     userName,
			PasswordHash: hash,
			Balance:      common.StartingBalance,
		})
		if err != nil {
			return err
		}
		if err := s.repomanager.Stats(tx).Create(ctx, account.ID); err != nil {
			return fmt.Errorf("error creating stats: %w", err)
		}
		created = account
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("%w: error registering account: %w", common.ErrorDependency, err)
	}

	return &models.Account{ID: created.ID, UserName: created.UserName, Balance: created.Balance}, nil
}

// Login returns the account whose stored hash matches password. An unknown
// username and a wrong password are both ErrorUnauthorized.
func (s *AccountService) Login(ctx context.Context, userName, password string) (*models.Account, error) {
	if userName == "" || password == "" {
		return nil, common.ErrorValidation
	}

	account, err := s.repomanager.Accounts(s.db).GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: error looking up account: %w", common.ErrorDependency, err)
	}

	if !s.hasher.Check(password, account.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return &models.Account{ID: account.ID, UserName: account.UserName, Balance: account.Balance}, nil
}

// GetProfile returns the profile of accountID, served from the profile cache
// when possible.
func (s *AccountService) GetProfile(ctx context.Context, accountID int64) (*models.ProfileView, error) {
	key := profileKey(accountID)
	if p, ok := s.profiles.Get(ctx, key); ok {
		return p, nil
	}

	p, err := s.repomanager.Accounts(s.db).GetProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: error reading profile: %w", common.ErrorDependency, err)
	}

	s.profiles.Set(ctx, key, p)
	return p, nil
}

func profileKey(accountID int64) string {
	return "profile:" + strconv.FormatInt(accountID, 10)
}
