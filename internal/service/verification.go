package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/snapdraw/raffle-api/internal/domain"
)

var (
	// ErrInvalidSignature is security relevant: the handler logs it
	// distinctly, and no state changes before the check passes.
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrEntriesNotFound  = errors.New("no entries found for order")
)

// SignatureVerifier is the trust-boundary check against the gateway's
// shared secret.
type SignatureVerifier interface {
	VerifySignature(orderID, paymentID, signature string) bool
}

type VerificationEntryRepository interface {
	FindByOrderID(ctx context.Context, orderID string) ([]domain.Entry, error)
	UpdateStatusByOrderID(ctx context.Context, orderID string, status domain.EntryStatus, paymentID string) (int64, error)
}

type VerificationService struct {
	verifier SignatureVerifier
	entries  VerificationEntryRepository
	logs     PaymentLogAppender
}

func NewVerificationService(verifier SignatureVerifier, entries VerificationEntryRepository, logs PaymentLogAppender) *VerificationService {
	return &VerificationService{
		verifier: verifier,
		entries:  entries,
		logs:     logs,
	}
}

type VerificationResult struct {
	Tokens          []string
	Entries         []domain.Entry
	NumberOfEntries int
}

// Verify validates the gateway callback and confirms the whole batch.
// Safe to call more than once for the same order: the status write sets
// CONFIRMED unconditionally, so gateway callbacks racing client polling
// re-affirm the same result. Each successful call appends audit rows.
func (s *VerificationService) Verify(ctx context.Context, orderID, paymentID, signature string) (VerificationResult, error) {
	if !s.verifier.VerifySignature(orderID, paymentID, signature) {
		return VerificationResult{}, ErrInvalidSignature
	}

	entries, err := s.entries.FindByOrderID(ctx, orderID)
	if err != nil {
		return VerificationResult{}, fmt.Errorf("s.entries.FindByOrderID -> %w", err)
	}
	if len(entries) == 0 {
		return VerificationResult{}, ErrEntriesNotFound
	}

	if _, err = s.entries.UpdateStatusByOrderID(ctx, orderID, domain.EntryConfirmed, paymentID); err != nil {
		return VerificationResult{}, fmt.Errorf("s.entries.UpdateStatusByOrderID -> %w", err)
	}

	confirmed, err := s.entries.FindByOrderID(ctx, orderID)
	if err != nil {
		return VerificationResult{}, fmt.Errorf("s.entries.FindByOrderID -> %w", err)
	}

	tokens := make([]string, 0, len(confirmed))
	for _, entry := range confirmed {
		tokens = append(tokens, entry.Token)

		// The signature itself stays out of the audit trail.
		if _, err = s.logs.Append(ctx, domain.PaymentLog{
			EntryID:         entry.ID,
			RazorpayOrderID: orderID,
			Amount:          entry.Amount,
			Status:          domain.PaymentSuccess,
			GatewayResponse: map[string]any{
				"razorpay_order_id":   orderID,
				"razorpay_payment_id": paymentID,
				"entry_number":        entry.EntryNumber,
				"total_entries":       entry.TotalEntries,
			},
		}); err != nil {
			return VerificationResult{}, fmt.Errorf("s.logs.Append -> %w", err)
		}
	}

	return VerificationResult{
		Tokens:          tokens,
		Entries:         confirmed,
		NumberOfEntries: len(confirmed),
	}, nil
}
