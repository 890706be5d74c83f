package domain

import "time"

// RaffleSettings is singleton-like configuration: the newest row wins.
// The core lifecycle only reads it; admin tooling writes it.
type RaffleSettings struct {
	ID         uint       `json:"id"`
	IsActive   bool       `json:"is_active"`
	EntryPrice int64      `json:"entry_price"` // minor currency units (paise)
	MaxEntries *int64     `json:"max_entries,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Ended reports whether the raffle end date has passed at the given time.
func (s RaffleSettings) Ended(now time.Time) bool {
	return s.EndDate != nil && now.After(*s.EndDate)
}
