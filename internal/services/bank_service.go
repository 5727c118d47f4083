package services

import (
	"github.com/ruralpay/atm/internal/config"
	"github.com/ruralpay/atm/internal/models"
)

// Directory answers account existence and lock-status queries for the ATM.
type Directory interface {
	// Lookup returns the account for id. Unknown ids are not an error.
	Lookup(id string) (*models.Account, bool)
	// IsLocked reports whether the account for id is locked. Unknown ids
	// are never locked.
	IsLocked(id string) bool
}

// BankService is the in-memory account directory. Membership is fixed at
// construction; the ATM mutates the shared records it hands out, so counter
// and lock updates are visible on the next lookup.
type BankService struct {
	name     string
	accounts map[string]*models.Account
}

// NewBankService seeds a directory from configuration.
func NewBankService(cfg *config.Config) *BankService {
	accounts := make(map[string]*models.Account, len(cfg.Accounts))
	for _, seed := range cfg.Accounts {
		accounts[seed.ID] = &models.Account{
			ID:      seed.ID,
			PIN:     seed.PIN,
			Balance: seed.Balance,
		}
	}
	return &BankService{name: cfg.BankName, accounts: accounts}
}

// Name returns the display name of the bank backing this directory.
func (s *BankService) Name() string { return s.name }

func (s *BankService) Lookup(id string) (*models.Account, bool) {
	acct, ok := s.accounts[id]
	return acct, ok
}

func (s *BankService) IsLocked(id string) bool {
	acct, ok := s.accounts[id]
	return ok && acct.Locked
}
