package domain

import "time"

type EntryStatus string

const (
	EntryPending   EntryStatus = "PENDING"
	EntryConfirmed EntryStatus = "CONFIRMED"
	EntryFailed    EntryStatus = "FAILED"
)

func (s EntryStatus) Valid() bool {
	switch s {
	case EntryPending, EntryConfirmed, EntryFailed:
		return true
	}
	return false
}

// CanTransitionTo encodes the status machine: PENDING may move to
// CONFIRMED or FAILED, both of which are terminal.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	return s == EntryPending && (next == EntryConfirmed || next == EntryFailed)
}

// Entry is one raffle ticket. The token is globally unique and immutable
// once assigned. A multi-ticket purchase shares one RazorpayOrderID and
// TotalEntries, with EntryNumber running 1..TotalEntries.
type Entry struct {
	ID              uint        `json:"id"`
	UserID          uint        `json:"user_id"`
	User            User        `json:"user,omitempty"`
	Token           string      `json:"token"`
	Amount          int64       `json:"amount"` // minor currency units (paise)
	Status          EntryStatus `json:"status"`
	PaymentID       string      `json:"payment_id,omitempty"`
	RazorpayOrderID string      `json:"razorpay_order_id,omitempty"`
	EntryNumber     int         `json:"entry_number"`
	TotalEntries    int         `json:"total_entries"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
