package domain

import "time"

type PaymentLogStatus string

const (
	PaymentInitiated PaymentLogStatus = "INITIATED"
	PaymentSuccess   PaymentLogStatus = "SUCCESS"
	PaymentFailed    PaymentLogStatus = "FAILED"
)

// PaymentLog is the append-only audit trail: one row per lifecycle event
// (order creation, verification, reconciliation). Rows are never mutated.
type PaymentLog struct {
	ID              uint             `json:"id"`
	EntryID         uint             `json:"entry_id"`
	RazorpayOrderID string           `json:"razorpay_order_id,omitempty"`
	Amount          int64            `json:"amount"`
	Status          PaymentLogStatus `json:"status"`
	GatewayResponse map[string]any   `json:"gateway_response,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}
