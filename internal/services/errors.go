package services

import (
	"errors"
	"fmt"
)

var (
	// ErrCardUnknown is returned by InsertCard when the id is not in the directory.
	ErrCardUnknown = errors.New("card not recognized")

	// ErrCardLocked is returned when the presented or active card is locked.
	ErrCardLocked = errors.New("card is locked")

	// ErrPINLockout reports the PIN mismatch that locked the card.
	ErrPINLockout = errors.New("card locked after too many failed PIN attempts")

	// ErrNoActiveCard is returned when an operation requires an inserted card.
	ErrNoActiveCard = errors.New("no card inserted")

	// ErrNotAuthenticated is returned when an operation requires a verified PIN.
	ErrNotAuthenticated = errors.New("PIN not verified")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrInvalidAmount is returned for deposits or withdrawals of zero or less.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// PINMismatchError reports an incorrect PIN and how many attempts remain
// before the card is locked.
type PINMismatchError struct {
	Remaining int
}

func (e *PINMismatchError) Error() string {
	return fmt.Sprintf("incorrect PIN, %d attempts remaining", e.Remaining)
}
