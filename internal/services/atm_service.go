package services

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/ruralpay/atm/internal/models"
)

// SessionState tracks how far the current card has progressed through the
// insert-card → enter-PIN flow.
type SessionState int

const (
	StateNoCard SessionState = iota
	StateCardPresented
	StateAuthenticated
)

// DefaultMaxPINAttempts is the number of consecutive PIN mismatches that
// locks a card.
const DefaultMaxPINAttempts = 3

// ATMService drives one ATM session at a time: card insertion, PIN
// verification with lockout, and the balance operations gated behind a
// verified PIN. It is single-threaded; one instance serves one machine.
type ATMService struct {
	directory   Directory
	logger      *slog.Logger
	maxAttempts int

	state     SessionState
	current   *models.Account
	sessionID uuid.UUID
}

// NewATMService wires an ATM to its account directory. maxAttempts <= 0
// falls back to DefaultMaxPINAttempts; a nil logger discards diagnostics.
func NewATMService(directory Directory, maxAttempts int, logger *slog.Logger) *ATMService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPINAttempts
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ATMService{directory: directory, maxAttempts: maxAttempts, logger: logger}
}

// InsertCard starts a new session for the card id, discarding any previous
// session. Locked and unknown cards leave the machine with no active card.
func (s *ATMService) InsertCard(id string) error {
	s.reset()
	if s.directory.IsLocked(id) {
		s.logger.Warn("card rejected: locked", "card_id", id)
		return ErrCardLocked
	}
	acct, ok := s.directory.Lookup(id)
	if !ok {
		s.logger.Warn("card rejected: unknown", "card_id", id)
		return ErrCardUnknown
	}
	s.current = acct
	s.state = StateCardPresented
	s.sessionID = uuid.New()
	s.logger.Info("card accepted", "card_id", id, "session_id", s.sessionID)
	return nil
}

// EnterPIN verifies pin against the active card. A match resets the failure
// counter; the mismatch that reaches the attempt limit locks the card
// permanently, and a locked card never authenticates.
func (s *ATMService) EnterPIN(pin string) error {
	if s.current == nil {
		return ErrNoActiveCard
	}
	if s.current.Locked {
		return ErrCardLocked
	}
	if s.current.PIN == pin {
		s.current.FailedAttempts = 0
		s.state = StateAuthenticated
		s.logger.Info("PIN verified", "card_id", s.current.ID, "session_id", s.sessionID)
		return nil
	}
	s.current.FailedAttempts++
	if s.current.FailedAttempts >= s.maxAttempts {
		s.current.Locked = true
		s.logger.Warn("card locked after failed PIN attempts",
			"card_id", s.current.ID, "session_id", s.sessionID,
			"attempts", s.current.FailedAttempts)
		return ErrPINLockout
	}
	remaining := s.maxAttempts - s.current.FailedAttempts
	s.logger.Warn("incorrect PIN",
		"card_id", s.current.ID, "session_id", s.sessionID, "remaining", remaining)
	return &PINMismatchError{Remaining: remaining}
}

// Balance returns the active account's balance in minor units.
func (s *ATMService) Balance() (int64, error) {
	if err := s.authenticated(); err != nil {
		return 0, err
	}
	return s.current.Balance, nil
}

// Deposit credits amount (minor units) to the active account.
func (s *ATMService) Deposit(amount int64) error {
	if err := s.authenticated(); err != nil {
		return err
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	s.current.Balance += amount
	s.logger.Info("deposit", "card_id", s.current.ID, "session_id", s.sessionID,
		"amount", amount, "balance", s.current.Balance)
	return nil
}

// Withdraw debits amount (minor units) from the active account. The balance
// never goes negative.
func (s *ATMService) Withdraw(amount int64) error {
	if err := s.authenticated(); err != nil {
		return err
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if s.current.Balance < amount {
		s.logger.Warn("withdrawal refused: insufficient balance",
			"card_id", s.current.ID, "session_id", s.sessionID, "amount", amount)
		return ErrInsufficientFunds
	}
	s.current.Balance -= amount
	s.logger.Info("withdrawal", "card_id", s.current.ID, "session_id", s.sessionID,
		"amount", amount, "balance", s.current.Balance)
	return nil
}

// EjectCard ends the current session, if any.
func (s *ATMService) EjectCard() {
	if s.current != nil {
		s.logger.Info("card ejected", "card_id", s.current.ID, "session_id", s.sessionID)
	}
	s.reset()
}

// CurrentAccount exposes the active account, or nil when no card is inserted.
func (s *ATMService) CurrentAccount() *models.Account { return s.current }

// State reports the session's position in the card/PIN flow.
func (s *ATMService) State() SessionState { return s.state }

func (s *ATMService) authenticated() error {
	if s.current == nil {
		return ErrNoActiveCard
	}
	if s.state != StateAuthenticated {
		return ErrNotAuthenticated
	}
	return nil
}

func (s *ATMService) reset() {
	s.current = nil
	s.state = StateNoCard
	s.sessionID = uuid.Nil
}
