package domain

import "time"

// Account represents a registered user of the system. Accounts are immutable
// once created and are referenced, never owned, by tasks.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
