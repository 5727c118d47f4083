package models

// Account represents one bank customer known to the directory.
// Balance is in minor units (cents). FailedAttempts counts consecutive
// PIN mismatches; Locked is set once the attempt limit is reached and is
// never cleared by the ATM itself.
type Account struct {
	ID             string `json:"id"`
	PIN            string `json:"-"`
	Balance        int64  `json:"balance"`
	FailedAttempts int    `json:"failed_attempts"`
	Locked         bool   `json:"locked"`
}
