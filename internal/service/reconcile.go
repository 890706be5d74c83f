package service

import (
	"context"
	"fmt"
	"time"

	"github.com/snapdraw/raffle-api/internal/domain"
)

// StalePendingAge is how long an entry may sit PENDING before the
// reconciliation sweep gives up on its payment.
const StalePendingAge = 24 * time.Hour

type ReconcileEntryRepository interface {
	FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Entry, error)
	UpdateStatusByIDs(ctx context.Context, ids []uint, status domain.EntryStatus) error
}

type ReconciliationReport struct {
	PendingChecked int       `json:"pending_checked"`
	MarkedFailed   int       `json:"marked_failed"`
	Cutoff         time.Time `json:"cutoff"`
}

type ReconcileService struct {
	entries ReconcileEntryRepository
	logs    PaymentLogAppender
}

func NewReconcileService(entries ReconcileEntryRepository, logs PaymentLogAppender) *ReconcileService {
	return &ReconcileService{
		entries: entries,
		logs:    logs,
	}
}

// Reconcile fails every PENDING entry whose payment window has lapsed.
// This is the only path that takes PENDING to FAILED; verification never
// does.
func (s *ReconcileService) Reconcile(ctx context.Context) (ReconciliationReport, error) {
	cutoff := time.Now().Add(-StalePendingAge)

	stale, err := s.entries.FindPendingOlderThan(ctx, cutoff)
	if err != nil {
		return ReconciliationReport{}, fmt.Errorf("s.entries.FindPendingOlderThan -> %w", err)
	}

	report := ReconciliationReport{
		PendingChecked: len(stale),
		Cutoff:         cutoff,
	}
	if len(stale) == 0 {
		return report, nil
	}

	ids := make([]uint, 0, len(stale))
	for _, entry := range stale {
		ids = append(ids, entry.ID)
	}

	if err = s.entries.UpdateStatusByIDs(ctx, ids, domain.EntryFailed); err != nil {
		return ReconciliationReport{}, fmt.Errorf("s.entries.UpdateStatusByIDs -> %w", err)
	}

	for _, entry := range stale {
		if _, err = s.logs.Append(ctx, domain.PaymentLog{
			EntryID:         entry.ID,
			RazorpayOrderID: entry.RazorpayOrderID,
			Amount:          entry.Amount,
			Status:          domain.PaymentFailed,
			GatewayResponse: map[string]any{
				"reason": "payment window expired",
			},
		}); err != nil {
			return ReconciliationReport{}, fmt.Errorf("s.logs.Append -> %w", err)
		}
	}

	report.MarkedFailed = len(stale)

	return report, nil
}
